package combat

import (
	"fmt"

	"github.com/tatianab/caveborn/internal/character"
)

// FinalBossState tracks the two stages of the final encounter. Each flag is
// set at most once and never cleared within a playthrough.
type FinalBossState struct {
	UsedWeaponAttack bool `yaml:"used_weapon_attack"`
	UsedClassAbility bool `yaml:"used_class_ability"`
}

// Victory is true once both stages have succeeded, in either order.
func (s FinalBossState) Victory() bool {
	return s.UsedWeaponAttack && s.UsedClassAbility
}

// Used reports whether the stage for action already succeeded.
func (s FinalBossState) Used(action Action) bool {
	switch action {
	case WeaponAttack:
		return s.UsedWeaponAttack
	case ClassAbility:
		return s.UsedClassAbility
	}
	return false
}

// Resolve attempts one stage of the final encounter.
//
// Postcondition: a repeat of a succeeded stage returns AlreadyUsed without
// re-evaluating; a success sets that stage's flag; a failure leaves both
// flags as they were and is lethal.
func (s *FinalBossState) Resolve(p *character.Player, w *character.Weapon, action Action) (Result, error) {
	if action != WeaponAttack && action != ClassAbility {
		return Result{}, fmt.Errorf("final boss does not offer %s: %w", action, ErrInvalidAction)
	}
	if s.Used(action) {
		return Result{Outcome: AlreadyUsed, NarrativeKey: "final_boss." + action.String() + ".already_used"}, nil
	}
	r, err := Resolve(p, w, FinalBoss, action)
	if err != nil {
		return Result{}, err
	}
	if r.Succeeded() {
		switch action {
		case WeaponAttack:
			s.UsedWeaponAttack = true
		case ClassAbility:
			s.UsedClassAbility = true
		}
	}
	return r, nil
}
