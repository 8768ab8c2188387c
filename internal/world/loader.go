package world

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed scenes.yaml
var scenesYAML []byte

type yamlWorldFile struct {
	World yamlWorld `yaml:"world"`
}

type yamlWorld struct {
	Title  string      `yaml:"title"`
	Start  string      `yaml:"start"`
	Scenes []yamlScene `yaml:"scenes"`
}

type yamlScene struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Revisit     string     `yaml:"revisit"`
	Locked      bool       `yaml:"locked"`
	RequiredKey string     `yaml:"required_key"`
	Exits       []yamlExit `yaml:"exits"`
}

type yamlExit struct {
	Token    string `yaml:"token"`
	Label    string `yaml:"label"`
	Target   string `yaml:"target"`
	Requires string `yaml:"requires"`
}

// Load parses and validates the embedded scene graph.
//
// Postcondition: Returns a validated Graph or a non-nil error.
func Load() (*Graph, error) {
	return LoadFromBytes(scenesYAML)
}

// MustLoad is Load for callers that cannot run without the world.
func MustLoad() *Graph {
	g, err := Load()
	if err != nil {
		panic(fmt.Sprintf("loading world: %v", err))
	}
	return g
}

// LoadFromBytes parses and validates a scene graph from YAML bytes.
//
// Precondition: data must be YAML conforming to the world schema.
// Postcondition: Returns a validated Graph or a non-nil error.
func LoadFromBytes(data []byte) (*Graph, error) {
	var file yamlWorldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing world YAML: %w", err)
	}
	g, err := NewGraph(file.World.Title, SceneID(file.World.Start), convertYAMLScenes(file.World.Scenes))
	if err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}
	return g, nil
}

func convertYAMLScenes(ys []yamlScene) []*Scene {
	scenes := make([]*Scene, 0, len(ys))
	for _, y := range ys {
		s := &Scene{
			ID:          SceneID(y.ID),
			Title:       y.Title,
			Description: strings.TrimSpace(y.Description),
			Revisit:     strings.TrimSpace(y.Revisit),
			Locked:      y.Locked,
			RequiredKey: y.RequiredKey,
		}
		if s.Revisit == "" {
			s.Revisit = s.Description
		}
		for _, ye := range y.Exits {
			label := ye.Label
			if label == "" {
				label = "Go to " + ye.Token
			}
			s.Exits = append(s.Exits, Exit{
				Token:        ye.Token,
				Label:        label,
				Target:       SceneID(ye.Target),
				RequiresFlag: ye.Requires,
			})
		}
		scenes = append(scenes, s)
	}
	return scenes
}
