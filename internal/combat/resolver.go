package combat

import (
	"fmt"

	"github.com/tatianab/caveborn/internal/character"
)

// Readiness is attributes[scaling] + vitality - ReadinessBaseline.
func Readiness(p *character.Player, w *character.Weapon) int {
	return p.Attributes.Get(w.ScalingAttribute) + p.Attributes.Vitality - ReadinessBaseline
}

// Resolve decides a single action against an encounter category.
//
// For FinalBoss the stage requirement is checked without regard to which
// stages already succeeded; use (*FinalBossState).Resolve to track them.
//
// Precondition: w must be non-nil for every action except Escape.
// Postcondition: Returns a Result, or ErrInvalidAction for an action the
// category does not offer.
func Resolve(p *character.Player, w *character.Weapon, cat Category, action Action) (Result, error) {
	if action != Escape && w == nil {
		return Result{}, fmt.Errorf("%s %s without a weapon: %w", cat, action, ErrInvalidAction)
	}
	switch cat {
	case Generic:
		switch action {
		case Attack:
			return resolveGenericAttack(p, w), nil
		case Escape:
			return resolveEscape(p), nil
		}
	case MidBoss:
		if action == Attack {
			return resolveMidBoss(p, w), nil
		}
	case FinalBoss:
		switch action {
		case WeaponAttack:
			return resolveWeaponAttack(p, w), nil
		case ClassAbility:
			return resolveClassAbility(p, w), nil
		}
	}
	return Result{}, fmt.Errorf("%s does not offer %s: %w", cat, action, ErrInvalidAction)
}

// resolveGenericAttack: any weapon the player swings wins a generic fight.
func resolveGenericAttack(p *character.Player, w *character.Weapon) Result {
	return Result{
		Outcome:      Success,
		NarrativeKey: "generic.attack.success",
		Damage:       character.Damage(w, p),
	}
}

// resolveEscape: only the agility class slips away; anyone else is caught.
func resolveEscape(p *character.Player) Result {
	if p.Class.Attribute() == character.Agility {
		return Result{Outcome: Success, NarrativeKey: "generic.escape.success"}
	}
	return Result{Outcome: Failure, NarrativeKey: "generic.escape.failure", Lethal: true}
}

// resolveMidBoss wins with this class's enhanced weapon, or with a base
// weapon whose scaling attribute meets StatRequirement. An enhanced weapon
// of another class always loses.
func resolveMidBoss(p *character.Player, w *character.Weapon) Result {
	r := Result{Damage: character.Damage(w, p)}
	switch {
	case w.Enhanced() && p.IsClassWeapon(w):
		r.Outcome, r.NarrativeKey = Success, "mid_boss.enhanced.success"
	case w.Enhanced():
		r.Outcome, r.NarrativeKey = Failure, "mid_boss.enhanced.wrong_class"
	case p.Attributes.Get(w.ScalingAttribute) >= StatRequirement:
		r.Outcome, r.NarrativeKey = Success, "mid_boss.base.success"
	default:
		r.Outcome, r.NarrativeKey = Failure, "mid_boss.base.too_weak"
	}
	r.Lethal = r.Outcome == Failure
	return r
}

func resolveWeaponAttack(p *character.Player, w *character.Weapon) Result {
	r := Result{Damage: character.Damage(w, p), Readiness: Readiness(p, w)}
	switch {
	case !w.Enhanced():
		r.Outcome, r.NarrativeKey = Failure, "final_boss.weapon_attack.not_enhanced"
	case r.Readiness < FinalBossStatRequirement:
		r.Outcome, r.NarrativeKey = Failure, "final_boss.weapon_attack.unready"
	default:
		r.Outcome, r.NarrativeKey = Success, "final_boss.weapon_attack.success"
	}
	r.Lethal = r.Outcome == Failure
	return r
}

func resolveClassAbility(p *character.Player, w *character.Weapon) Result {
	r := Result{Damage: character.Damage(w, p), Readiness: Readiness(p, w)}
	switch {
	case !p.IsClassWeapon(w):
		r.Outcome, r.NarrativeKey = Failure, "final_boss.class_ability.wrong_class"
	case p.Attributes.Get(w.ScalingAttribute) < StatRequirement:
		r.Outcome, r.NarrativeKey = Failure, "final_boss.class_ability.too_weak"
	case r.Readiness < FinalBossStatRequirement:
		r.Outcome, r.NarrativeKey = Failure, "final_boss.class_ability.unready"
	default:
		r.Outcome, r.NarrativeKey = Success, "final_boss.class_ability.success"
	}
	r.Lethal = r.Outcome == Failure
	return r
}
