package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/caveborn/internal/engine"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in   string
		want engine.Intent
	}{
		{"look", engine.Intent{Verb: "look"}},
		{" Go:Enter ", engine.Intent{Verb: "go", Arg: "enter"}},
		{"attack:shadow_dagger", engine.Intent{Verb: "attack", Arg: "shadow_dagger"}},
		{"", engine.Intent{}},
	}
	for _, tt := range tests {
		got := engine.ParseIntent(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.Equal(t, "go:enter", engine.ParseIntent("go:enter").Token())
}

func TestNarrative_Render(t *testing.T) {
	n, err := engine.LoadNarrativeFromBytes([]byte("greet: \"Hello, {{.Name}}.\"\n"))
	require.NoError(t, err)
	assert.True(t, n.Has("greet"))

	text, err := n.Render("greet", struct{ Name string }{"rogue"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, rogue.", text)

	_, err = n.Render("farewell", nil)
	require.ErrorIs(t, err, engine.ErrUnknownNarrative)
}

func TestNarrative_BadTemplate(t *testing.T) {
	_, err := engine.LoadNarrativeFromBytes([]byte("greet: \"{{.Name\"\n"))
	require.Error(t, err)
}

func TestLoadNarrative_Embedded(t *testing.T) {
	n, err := engine.LoadNarrative()
	require.NoError(t, err)
	text, err := n.Render("level_up", map[string]int{"Level": 2, "Points": 3})
	require.NoError(t, err)
	assert.Contains(t, text, "level 2")
}
