// Package progression handles leveling and attribute point allocation.
//
// Points from a level-up are spent immediately: the director will not move
// past a level-up while Pending reports true, so points never bank across
// levels.
package progression

import (
	"errors"
	"fmt"

	"github.com/tatianab/caveborn/internal/character"
)

// LevelUpPoints is the attribute points granted per level.
const LevelUpPoints = 3

// ErrNoAttributePoints is returned by Allocate when the pool is empty.
var ErrNoAttributePoints = errors.New("no attribute points to spend")

// LevelUp raises the player's level and grants LevelUpPoints.
//
// Postcondition: Level and AttributePoints grow by 1 and LevelUpPoints.
func LevelUp(p *character.Player) {
	p.Level++
	p.AttributePoints += LevelUpPoints
}

// Allocate spends one point on attr.
//
// Postcondition: on success attr is one higher and the pool one lower; on
// error (empty pool, unknown attribute) the player is unchanged.
func Allocate(p *character.Player, attr character.Attribute) error {
	if p.AttributePoints <= 0 {
		return ErrNoAttributePoints
	}
	if !attr.Valid() {
		return fmt.Errorf("allocating %q: %w", attr, character.ErrUnknownAttribute)
	}
	if err := p.Attributes.Add(attr, 1); err != nil {
		return err
	}
	p.AttributePoints--
	// Vitality raises max health; keep current health in step with it.
	if attr == character.Vitality && p.Alive() {
		p.Health += 10
	}
	return nil
}

// Pending reports whether unspent points block progress.
func Pending(p *character.Player) bool {
	return p.AttributePoints > 0
}
