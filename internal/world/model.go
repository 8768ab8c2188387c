// Package world provides the scene graph: scenes, exits, and locks.
package world

import (
	"errors"
	"fmt"
)

// SceneID identifies a scene in the graph.
type SceneID string

// The eight scenes of the cave and village.
const (
	CaveEntrance     SceneID = "cave_entrance"
	SkullChamber     SceneID = "skull_chamber"
	PrimitiveVillage SceneID = "primitive_village"
	Alley            SceneID = "alley"
	Armory           SceneID = "armory"
	ChiefHouse       SceneID = "chief_house"
	HealingPool      SceneID = "healing_pool"
	VillageChanged   SceneID = "village_changed"
)

// CanonicalScenes lists every scene the graph must contain, in travel order.
var CanonicalScenes = []SceneID{
	CaveEntrance, SkullChamber, PrimitiveVillage, Alley,
	Armory, ChiefHouse, HealingPool, VillageChanged,
}

// ErrSceneNotFound is returned when a scene id is not part of the graph.
var ErrSceneNotFound = errors.New("scene not found")

// KeyRing is the read side of an inventory, enough to test a lock.
type KeyRing interface {
	Has(itemID string) bool
}

// Exit is a passage from one scene to another, selected by its token.
type Exit struct {
	// Token is the action word the player picks, e.g. "village".
	Token string
	// Label is the text shown next to the choice.
	Label string
	// Target is the destination scene.
	Target SceneID
	// RequiresFlag names a playthrough flag that must be set for the exit
	// to be offered. Empty means always available.
	RequiresFlag string
}

// Scene is a navigable location.
type Scene struct {
	ID          SceneID
	Title       string
	Description string
	// Revisit is the shorter text shown after the first visit.
	Revisit string
	Exits   []Exit
	// Locked scenes can only be entered while RequiredKey is held.
	Locked      bool
	RequiredKey string
}

// Exit returns the exit selected by token.
//
// Postcondition: Returns (exit, true) if found, or (Exit{}, false) otherwise.
func (s *Scene) Exit(token string) (Exit, bool) {
	for _, e := range s.Exits {
		if e.Token == token {
			return e, true
		}
	}
	return Exit{}, false
}

// CanEnter reports whether a scene may be entered holding the given keys.
func CanEnter(s *Scene, keys KeyRing) bool {
	return !s.Locked || keys.Has(s.RequiredKey)
}

// Validate checks scene invariants that do not depend on the rest of the graph.
func (s *Scene) Validate() error {
	if s.ID == "" {
		return errors.New("scene ID must not be empty")
	}
	if s.Title == "" {
		return fmt.Errorf("scene %q: title must not be empty", s.ID)
	}
	if s.Description == "" {
		return fmt.Errorf("scene %q: description must not be empty", s.ID)
	}
	if s.Locked && s.RequiredKey == "" {
		return fmt.Errorf("scene %q: locked scene must name a required_key", s.ID)
	}
	if !s.Locked && s.RequiredKey != "" {
		return fmt.Errorf("scene %q: required_key %q set on an unlocked scene", s.ID, s.RequiredKey)
	}
	seen := make(map[string]bool, len(s.Exits))
	for _, e := range s.Exits {
		if e.Token == "" {
			return fmt.Errorf("scene %q: exit with empty token", s.ID)
		}
		if seen[e.Token] {
			return fmt.Errorf("scene %q: duplicate exit token %q", s.ID, e.Token)
		}
		seen[e.Token] = true
		if e.Target == "" {
			return fmt.Errorf("scene %q: exit %q has empty target", s.ID, e.Token)
		}
	}
	return nil
}
