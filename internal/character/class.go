package character

import (
	"errors"
	"fmt"
	"strings"
)

// Class is fixed at the start of a playthrough. It decides the starting
// weapon and which enhanced weapon and class ability count as matching.
type Class string

const (
	Rogue   Class = "rogue"
	Warrior Class = "warrior"
	Mage    Class = "mage"
)

// AllClasses lists the classes in menu order.
var AllClasses = []Class{Rogue, Warrior, Mage}

// ErrUnknownClass is returned for names outside AllClasses.
var ErrUnknownClass = errors.New("unknown class")

// ParseClass converts a case-insensitive name into a Class.
func ParseClass(name string) (Class, error) {
	c := Class(strings.ToLower(strings.TrimSpace(name)))
	switch c {
	case Rogue, Warrior, Mage:
		return c, nil
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownClass)
}

// Attribute is the scaling attribute the class is built around.
func (c Class) Attribute() Attribute {
	switch c {
	case Rogue:
		return Agility
	case Warrior:
		return Strength
	case Mage:
		return Intelligence
	}
	return ""
}

// StartingWeapon is the ID of the base weapon the class begins with.
func (c Class) StartingWeapon() string {
	switch c {
	case Rogue:
		return WeaponDagger
	case Warrior:
		return WeaponAxe
	case Mage:
		return WeaponWand
	}
	return ""
}

// Label returns the display name, e.g. "Rogue".
func (c Class) Label() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}
