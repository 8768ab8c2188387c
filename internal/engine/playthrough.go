package engine

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/combat"
	"github.com/tatianab/caveborn/internal/world"
)

// Status is where a playthrough stands.
type Status int

const (
	StatusPlaying Status = iota
	// StatusAllocating blocks everything but attribute allocation.
	StatusAllocating
	StatusDead
	StatusWon
	StatusQuit
)

// String returns the status label recorded in transcripts.
func (s Status) String() string {
	switch s {
	case StatusPlaying:
		return "PLAYING"
	case StatusAllocating:
		return "LEVELING"
	case StatusDead:
		return "LOST"
	case StatusWon:
		return "WON"
	case StatusQuit:
		return "QUIT"
	default:
		return "UNKNOWN"
	}
}

// Over reports whether no further steps are possible.
func (s Status) Over() bool {
	return s == StatusWon || s == StatusQuit
}

// Flag names usable as exit requirements.
const (
	FlagAlleyCreatureDead = "alley_creature_dead"
	FlagRogueEscapedAlley = "rogue_escaped_alley"
	FlagDefeatedChief     = "defeated_chief"
	FlagReceivedBlessing  = "received_blessing"
	FlagUsedWeaponAttack  = "used_weapon_attack"
	FlagUsedClassAbility  = "used_class_ability"
)

// Flags is the per-run state that is not part of the player.
type Flags struct {
	Visited           mapset.Set[world.SceneID]
	AlleyCreatureDead bool
	RogueEscapedAlley bool
	DefeatedChief     bool
	ReceivedBlessing  bool
	FinalBoss         combat.FinalBossState
}

// NewFlags returns flags with nothing visited and nothing set.
func NewFlags() *Flags {
	return &Flags{Visited: mapset.New[world.SceneID]()}
}

// Has reports the value of a named flag. The second result is false for a
// name that is not a flag.
func (f *Flags) Has(name string) (bool, bool) {
	switch name {
	case FlagAlleyCreatureDead:
		return f.AlleyCreatureDead, true
	case FlagRogueEscapedAlley:
		return f.RogueEscapedAlley, true
	case FlagDefeatedChief:
		return f.DefeatedChief, true
	case FlagReceivedBlessing:
		return f.ReceivedBlessing, true
	case FlagUsedWeaponAttack:
		return f.FinalBoss.UsedWeaponAttack, true
	case FlagUsedClassAbility:
		return f.FinalBoss.UsedClassAbility, true
	}
	return false, false
}

// VisitedScenes returns the visited scene IDs in sorted order.
func (f *Flags) VisitedScenes() []world.SceneID {
	out := make([]world.SceneID, 0, f.Visited.Size())
	f.Visited.Each(func(id world.SceneID) {
		out = append(out, id)
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Playthrough is the single mutable aggregate of one run: the player, their
// inventory, the flags and the current scene. The Director owns it.
type Playthrough struct {
	ID     string
	Class  character.Class
	Player *character.Player
	Flags  *Flags
	Scene  world.SceneID
	Status Status
	Turns  int
}
