// Package character defines the player, their class, weapons and inventory.
package character

import (
	"errors"
	"fmt"
	"strings"
)

// Attribute names one of the four player attributes.
type Attribute string

const (
	Vitality     Attribute = "vitality"
	Agility      Attribute = "agility"
	Strength     Attribute = "strength"
	Intelligence Attribute = "intelligence"
)

// StartingAttributeValue is every attribute's value on a new player.
const StartingAttributeValue = 5

// AllAttributes lists the attributes in display order.
var AllAttributes = []Attribute{Vitality, Agility, Strength, Intelligence}

// ErrUnknownAttribute is returned for names outside AllAttributes.
var ErrUnknownAttribute = errors.New("unknown attribute")

// ParseAttribute converts a case-insensitive name into an Attribute.
func ParseAttribute(name string) (Attribute, error) {
	a := Attribute(strings.ToLower(strings.TrimSpace(name)))
	if !a.Valid() {
		return "", fmt.Errorf("%q: %w", name, ErrUnknownAttribute)
	}
	return a, nil
}

// Valid reports whether a is one of the four attributes.
func (a Attribute) Valid() bool {
	switch a {
	case Vitality, Agility, Strength, Intelligence:
		return true
	}
	return false
}

// Scaling reports whether a weapon may scale with a.
func (a Attribute) Scaling() bool {
	return a == Agility || a == Strength || a == Intelligence
}

// Label returns the display name, e.g. "Agility".
func (a Attribute) Label() string {
	if a == "" {
		return ""
	}
	return strings.ToUpper(string(a[:1])) + string(a[1:])
}

// Attributes holds the player's attribute values.
type Attributes struct {
	Vitality     int `yaml:"vitality"`
	Agility      int `yaml:"agility"`
	Strength     int `yaml:"strength"`
	Intelligence int `yaml:"intelligence"`
}

// NewAttributes returns attributes at their starting values.
func NewAttributes() Attributes {
	return Attributes{
		Vitality:     StartingAttributeValue,
		Agility:      StartingAttributeValue,
		Strength:     StartingAttributeValue,
		Intelligence: StartingAttributeValue,
	}
}

// Get returns the value of a.
//
// Precondition: a must be valid; an invalid attribute reads as 0.
func (s Attributes) Get(a Attribute) int {
	switch a {
	case Vitality:
		return s.Vitality
	case Agility:
		return s.Agility
	case Strength:
		return s.Strength
	case Intelligence:
		return s.Intelligence
	}
	return 0
}

// Add raises a by delta.
//
// Postcondition: Returns ErrUnknownAttribute and leaves s unchanged if a is invalid.
func (s *Attributes) Add(a Attribute, delta int) error {
	switch a {
	case Vitality:
		s.Vitality += delta
	case Agility:
		s.Agility += delta
	case Strength:
		s.Strength += delta
	case Intelligence:
		s.Intelligence += delta
	default:
		return fmt.Errorf("%q: %w", a, ErrUnknownAttribute)
	}
	return nil
}

// Sum is the total of all four attributes.
func (s Attributes) Sum() int {
	return s.Vitality + s.Agility + s.Strength + s.Intelligence
}
