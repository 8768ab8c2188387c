package character

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Player is the character for one playthrough.
type Player struct {
	Class           Class
	Health          int
	Level           int
	Attributes      Attributes
	AttributePoints int
	// EquippedWeapon is the class's starting weapon. It never changes.
	EquippedWeapon string
	Inventory      *Inventory

	collected mapset.Set[string]
}

// NewPlayer builds a level 1 player of class c holding its starting weapon.
//
// Precondition: c must be a valid class.
// Postcondition: Returns a player at full health with only the starting
// weapon collected, or a non-nil error.
func NewPlayer(c Class, catalog *Catalog) (*Player, error) {
	if _, err := ParseClass(string(c)); err != nil {
		return nil, err
	}
	start, err := catalog.Weapon(c.StartingWeapon())
	if err != nil {
		return nil, fmt.Errorf("equipping starting weapon: %w", err)
	}
	p := &Player{
		Class:          c,
		Level:          1,
		Attributes:     NewAttributes(),
		EquippedWeapon: start.ID,
		Inventory:      NewInventory(),
		collected:      mapset.New[string](),
	}
	p.collected.Put(start.ID)
	p.Health = p.MaxHealth()
	return p, nil
}

// MaxHealth grows with vitality: 50 + 10 per point.
func (p *Player) MaxHealth() int {
	return 50 + 10*p.Attributes.Vitality
}

// Alive reports whether the player has health left.
func (p *Player) Alive() bool { return p.Health > 0 }

// CollectWeapon adds w to the collected weapons and reports whether it was
// newly added. Collecting a weapon twice leaves the set unchanged.
func (p *Player) CollectWeapon(w *Weapon) bool {
	if p.collected.Has(w.ID) {
		return false
	}
	p.collected.Put(w.ID)
	return true
}

// HasWeapon reports whether the weapon with the given ID has been collected.
func (p *Player) HasWeapon(id string) bool {
	return p.collected.Has(id)
}

// CollectedWeapons returns the collected weapon IDs in sorted order.
func (p *Player) CollectedWeapons() []string {
	return sortedKeys(p.collected)
}

// IsClassWeapon reports whether w scales with the player's class attribute.
// Matching is by attribute, so any copy of a weapon definition compares equal.
func (p *Player) IsClassWeapon(w *Weapon) bool {
	return w.ScalingAttribute == p.Class.Attribute()
}

// Damage is the weapon's base power plus the player's scaling attribute.
func Damage(w *Weapon, p *Player) int {
	return w.BasePower + p.Attributes.Get(w.ScalingAttribute)
}
