package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/engine"
)

var errScriptDone = errors.New("script exhausted")

// scripted plays a fixed list of tokens.
type scripted struct {
	tokens  []string
	lines   []string
	prompts int
}

func (s *scripted) Display(lines []string) { s.lines = append(s.lines, lines...) }

func (s *scripted) Prompt(_ context.Context, _ []engine.Choice) (string, error) {
	if len(s.tokens) == 0 {
		return "", errScriptDone
	}
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	s.prompts++
	return tok, nil
}

func TestRun_RogueWins(t *testing.T) {
	d := newDirector(t)
	script := append(append([]string{}, rogueToFinal...), "strike:shadow_dagger", "ability:shadow_dagger")
	p := &scripted{tokens: script}

	var steps []engine.StepResult
	pt, err := engine.Run(context.Background(), d, p, character.Rogue, func(_ *engine.Playthrough, _ string, res engine.StepResult) {
		steps = append(steps, res)
	})
	require.NoError(t, err)
	assert.Equal(t, engine.StatusWon, pt.Status)
	assert.Len(t, steps, len(script))
	assert.Equal(t, len(script), pt.Turns)
	assert.Contains(t, p.lines[len(p.lines)-1], "You have won")
}

func TestRun_PresenterErrorEndsRun(t *testing.T) {
	d := newDirector(t)
	p := &scripted{tokens: []string{"go:enter", "look"}}
	pt, err := engine.Run(context.Background(), d, p, character.Mage, nil)
	require.ErrorIs(t, err, errScriptDone)
	assert.Equal(t, 2, pt.Turns)
	assert.Equal(t, engine.StatusPlaying, pt.Status)
}

func TestRun_Cancelled(t *testing.T) {
	d := newDirector(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := engine.Run(ctx, d, &scripted{}, character.Warrior, nil)
	require.ErrorIs(t, err, context.Canceled)
}

// TestPropertyRandomPlay drives playthroughs with arbitrary tokens and checks
// that rejected intents never change state and the flags stay consistent.
func TestPropertyRandomPlay(t *testing.T) {
	d, err := engine.New(zap.NewNop())
	require.NoError(t, err)
	pool := []string{
		"go:enter", "go:back", "go:village", "go:alley", "go:armory", "go:chief",
		"go:cave", "go:pool", "look", "search", "talk", "escape", "drink",
		"attack:dagger", "attack:axe", "attack:wand",
		"take:shadow_dagger", "take:war_axe", "take:star_wand",
		"fight:dagger", "fight:axe", "fight:wand", "fight:shadow_dagger", "fight:war_axe", "fight:star_wand",
		"strike:shadow_dagger", "strike:war_axe", "strike:star_wand", "strike:dagger",
		"ability:shadow_dagger", "ability:war_axe", "ability:star_wand", "ability:wand",
		"allocate:vitality", "allocate:agility", "allocate:strength", "allocate:intelligence",
		"restart", "bogus",
	}

	rapid.Check(t, func(rt *rapid.T) {
		class := rapid.SampledFrom(character.AllClasses).Draw(rt, "class")
		pt, err := d.NewPlaythrough(class)
		require.NoError(rt, err)

		n := rapid.IntRange(1, 80).Draw(rt, "steps")
		for i := 0; i < n && !pt.Status.Over(); i++ {
			tok := rapid.SampledFrom(pool).Draw(rt, "token")
			scene, status, turns := pt.Scene, pt.Status, pt.Turns
			level, points := pt.Player.Level, pt.Player.AttributePoints

			res, err := d.Step(context.Background(), pt, tok)
			require.NoError(rt, err)
			if res.Invalid {
				assert.Equal(rt, scene, pt.Scene)
				assert.Equal(rt, status, pt.Status)
				assert.Equal(rt, turns, pt.Turns)
				assert.Equal(rt, level, pt.Player.Level)
				assert.Equal(rt, points, pt.Player.AttributePoints)
				continue
			}
			assert.Equal(rt, turns+1, pt.Turns)
			if pt.Status == engine.StatusPlaying {
				assert.Zero(rt, pt.Player.AttributePoints)
			}
			if pt.Status == engine.StatusWon {
				assert.True(rt, pt.Flags.FinalBoss.Victory())
			}
			for _, item := range pt.Player.Inventory.Items() {
				assert.Contains(rt, []string{character.ArmoryKey, character.TownKey}, item)
			}
			assert.True(rt, pt.Player.HasWeapon(class.StartingWeapon()))
		}
	})
}
