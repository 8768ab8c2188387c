// Package combat decides encounter outcomes. Every function here is a pure
// function of the player, the chosen weapon and the encounter; nothing rolls
// dice.
package combat

import "errors"

// Thresholds used by the boss encounters.
const (
	// StatRequirement is the scaling attribute a base weapon needs against
	// the chief, and the class ability needs against the final boss.
	StatRequirement = 8
	// FinalBossStatRequirement is the combat readiness the final boss demands.
	FinalBossStatRequirement = 5
	// ReadinessBaseline is subtracted from attribute + vitality to get readiness.
	ReadinessBaseline = 10
)

// Category is the kind of encounter being fought.
type Category int

const (
	Generic Category = iota
	MidBoss
	FinalBoss
)

// String returns the category name used in narrative keys.
func (c Category) String() string {
	switch c {
	case Generic:
		return "generic"
	case MidBoss:
		return "mid_boss"
	case FinalBoss:
		return "final_boss"
	default:
		return "unknown"
	}
}

// Action is what the player tries to do in an encounter.
type Action int

const (
	// Attack strikes with the chosen weapon (generic and mid-boss).
	Attack Action = iota
	// Escape flees a generic encounter without fighting.
	Escape
	// WeaponAttack is the final boss's weapon stage.
	WeaponAttack
	// ClassAbility is the final boss's class stage.
	ClassAbility
)

// String returns the action name used in narrative keys.
func (a Action) String() string {
	switch a {
	case Attack:
		return "attack"
	case Escape:
		return "escape"
	case WeaponAttack:
		return "weapon_attack"
	case ClassAbility:
		return "class_ability"
	default:
		return "unknown"
	}
}

// Outcome is the result of one action.
type Outcome int

const (
	Success Outcome = iota
	Failure
	// AlreadyUsed marks a repeat of a final-boss action that already
	// succeeded. It is not evaluated again and is never lethal.
	AlreadyUsed
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Failure:
		return "failure"
	case AlreadyUsed:
		return "already used"
	default:
		return "unknown"
	}
}

// ErrInvalidAction is returned for an action the encounter does not offer,
// or a missing weapon where one is required.
var ErrInvalidAction = errors.New("invalid combat action")

// Result is the outcome of resolving one action.
type Result struct {
	Outcome Outcome
	// NarrativeKey selects the text that describes the outcome.
	NarrativeKey string
	// Lethal is true when the outcome ends the playthrough in death.
	Lethal bool
	// Damage is the weapon's damage against the player's stats, 0 when no
	// weapon was swung.
	Damage int
	// Readiness is the combat readiness used by final-boss checks.
	Readiness int
}

// Succeeded reports whether the outcome was a success.
func (r Result) Succeeded() bool { return r.Outcome == Success }
