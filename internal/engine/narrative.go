package engine

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed narrative.yaml
var narrativeYAML []byte

// ErrUnknownNarrative is returned when a narrative key has no text.
var ErrUnknownNarrative = errors.New("unknown narrative key")

// Narrative renders the game's text from keyed templates.
type Narrative struct {
	templates map[string]*template.Template
}

// LoadNarrative parses the embedded narrative templates.
func LoadNarrative() (*Narrative, error) {
	return LoadNarrativeFromBytes(narrativeYAML)
}

// LoadNarrativeFromBytes parses a YAML map of key to template text.
func LoadNarrativeFromBytes(data []byte) (*Narrative, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing narrative YAML: %w", err)
	}
	n := &Narrative{templates: make(map[string]*template.Template, len(raw))}
	for key, text := range raw {
		tmpl, err := template.New(key).Option("missingkey=error").Parse(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("parsing narrative %q: %w", key, err)
		}
		n.templates[key] = tmpl
	}
	return n, nil
}

// Has reports whether key has a template.
func (n *Narrative) Has(key string) bool {
	_, ok := n.templates[key]
	return ok
}

// Render executes the template for key with data.
func (n *Narrative) Render(key string, data any) (string, error) {
	tmpl, ok := n.templates[key]
	if !ok {
		return "", fmt.Errorf("%q: %w", key, ErrUnknownNarrative)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering narrative %q: %w", key, err)
	}
	return buf.String(), nil
}

// vars is the data every narrative template may draw on.
type vars struct {
	Class     string
	Ability   string
	Weapon    string
	Item      string
	Scene     string
	Attribute string
	Value     int
	Power     int
	Damage    int
	Readiness int
	Required  int
	Level     int
	Points    int
	Health    int
}

// narration accumulates the ordered lines of one step.
type narration struct {
	n     *Narrative
	lines []string
}

func (s *narration) say(key string, v vars) error {
	text, err := s.n.Render(key, v)
	if err != nil {
		return err
	}
	s.lines = append(s.lines, text)
	return nil
}

func (s *narration) line(text string) {
	s.lines = append(s.lines, text)
}
