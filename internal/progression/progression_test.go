package progression

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tatianab/caveborn/internal/character"
)

func newRogue(t require.TestingT) *character.Player {
	p, err := character.NewPlayer(character.Rogue, character.MustLoadCatalog())
	require.NoError(t, err)
	return p
}

func TestLevelUp(t *testing.T) {
	p := newRogue(t)
	LevelUp(p)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, LevelUpPoints, p.AttributePoints)
	assert.True(t, Pending(p))
}

func TestAllocate_EmptyPool(t *testing.T) {
	p := newRogue(t)
	before := p.Attributes
	err := Allocate(p, character.Agility)
	assert.True(t, errors.Is(err, ErrNoAttributePoints))
	assert.Equal(t, before, p.Attributes)
}

func TestAllocate_UnknownAttribute(t *testing.T) {
	p := newRogue(t)
	LevelUp(p)
	err := Allocate(p, "charisma")
	assert.True(t, errors.Is(err, character.ErrUnknownAttribute))
	assert.Equal(t, LevelUpPoints, p.AttributePoints)
	assert.Equal(t, character.NewAttributes(), p.Attributes)
}

func TestAllocate_VitalityRaisesHealth(t *testing.T) {
	p := newRogue(t)
	LevelUp(p)
	require.NoError(t, Allocate(p, character.Vitality))
	assert.Equal(t, p.MaxHealth(), p.Health)
}

func TestAllocate_AllToAgility(t *testing.T) {
	p := newRogue(t)
	LevelUp(p)
	for i := 0; i < LevelUpPoints; i++ {
		require.NoError(t, Allocate(p, character.Agility))
	}
	assert.Equal(t, 8, p.Attributes.Agility)
	assert.False(t, Pending(p))
}

// Property: a level-up adds exactly 3 points, and spending them all empties
// the pool and raises the attribute sum by exactly 3.
func TestPropertyLevelUpAllocation(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := newRogue(rt)
		p.AttributePoints = 0
		levels := rapid.IntRange(1, 4).Draw(rt, "levels")
		for l := 0; l < levels; l++ {
			sum := p.Attributes.Sum()
			pool := p.AttributePoints
			LevelUp(p)
			if p.AttributePoints != pool+LevelUpPoints {
				rt.Fatalf("points %d after level-up, want %d", p.AttributePoints, pool+LevelUpPoints)
			}
			for Pending(p) {
				attr := rapid.SampledFrom(character.AllAttributes).Draw(rt, "attr")
				if err := Allocate(p, attr); err != nil {
					rt.Fatal(err)
				}
			}
			if p.AttributePoints != 0 {
				rt.Fatalf("points %d after allocation", p.AttributePoints)
			}
			if p.Attributes.Sum() != sum+LevelUpPoints {
				rt.Fatalf("attribute sum %d, want %d", p.Attributes.Sum(), sum+LevelUpPoints)
			}
		}
	})
}
