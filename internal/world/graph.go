package world

import (
	"fmt"
	"sort"
)

// Graph is the immutable registry of scenes. It is safe to share across
// playthroughs because nothing mutates it after Load.
type Graph struct {
	title  string
	scenes map[SceneID]*Scene
	start  SceneID
}

// NewGraph indexes scenes by ID and validates the topology.
//
// Precondition: scenes must contain every canonical scene exactly once.
// Postcondition: Returns a Graph whose exits all resolve, or a non-nil error.
func NewGraph(title string, start SceneID, scenes []*Scene) (*Graph, error) {
	g := &Graph{
		title:  title,
		scenes: make(map[SceneID]*Scene, len(scenes)),
		start:  start,
	}
	for _, s := range scenes {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, exists := g.scenes[s.ID]; exists {
			return nil, fmt.Errorf("duplicate scene ID %q", s.ID)
		}
		g.scenes[s.ID] = s
	}
	if err := g.validate(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Graph) validate() error {
	if _, ok := g.scenes[g.start]; !ok {
		return fmt.Errorf("start scene %q: %w", g.start, ErrSceneNotFound)
	}
	for _, id := range CanonicalScenes {
		if _, ok := g.scenes[id]; !ok {
			return fmt.Errorf("canonical scene %q missing: %w", id, ErrSceneNotFound)
		}
	}
	if len(g.scenes) != len(CanonicalScenes) {
		return fmt.Errorf("graph has %d scenes, want %d", len(g.scenes), len(CanonicalScenes))
	}
	for _, s := range g.scenes {
		for _, e := range s.Exits {
			if _, ok := g.scenes[e.Target]; !ok {
				return fmt.Errorf("scene %q: exit %q targets unknown scene %q: %w", s.ID, e.Token, e.Target, ErrSceneNotFound)
			}
		}
	}
	return nil
}

// Title is the adventure's display name.
func (g *Graph) Title() string { return g.title }

// Start returns the scene every playthrough begins in.
func (g *Graph) Start() SceneID { return g.start }

// Scene returns the scene with the given ID.
//
// Postcondition: Returns the scene, or an error wrapping ErrSceneNotFound.
func (g *Graph) Scene(id SceneID) (*Scene, error) {
	s, ok := g.scenes[id]
	if !ok {
		return nil, fmt.Errorf("scene %q: %w", id, ErrSceneNotFound)
	}
	return s, nil
}

// SceneIDs returns all scene IDs in sorted order.
func (g *Graph) SceneIDs() []SceneID {
	ids := make([]SceneID, 0, len(g.scenes))
	for id := range g.scenes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ExitFlags returns every flag name referenced by an exit.
func (g *Graph) ExitFlags() []string {
	seen := make(map[string]bool)
	var flags []string
	for _, id := range g.SceneIDs() {
		for _, e := range g.scenes[id].Exits {
			if e.RequiresFlag != "" && !seen[e.RequiresFlag] {
				seen[e.RequiresFlag] = true
				flags = append(flags, e.RequiresFlag)
			}
		}
	}
	return flags
}
