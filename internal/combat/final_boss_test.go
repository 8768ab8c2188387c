package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tatianab/caveborn/internal/character"
)

// readyRogue can pass both final-boss stages with the shadow dagger.
func readyRogue(t require.TestingT) *character.Player {
	p := player(t, character.Rogue)
	p.Attributes.Agility = 11
	p.Attributes.Vitality = 5
	return p
}

func TestFinalBossState_EitherOrder(t *testing.T) {
	orders := map[string][]Action{
		"weapon first":  {WeaponAttack, ClassAbility},
		"ability first": {ClassAbility, WeaponAttack},
	}
	for name, order := range orders {
		t.Run(name, func(t *testing.T) {
			p := readyRogue(t)
			w := weapon(t, character.WeaponShadowDagger)
			var s FinalBossState

			r, err := s.Resolve(p, w, order[0])
			require.NoError(t, err)
			require.Equal(t, Success, r.Outcome)
			assert.False(t, s.Victory(), "one stage must not win")

			r, err = s.Resolve(p, w, order[1])
			require.NoError(t, err)
			require.Equal(t, Success, r.Outcome)
			assert.True(t, s.Victory())
		})
	}
}

func TestFinalBossState_RepeatIsNoOp(t *testing.T) {
	p := readyRogue(t)
	w := weapon(t, character.WeaponShadowDagger)
	var s FinalBossState

	_, err := s.Resolve(p, w, WeaponAttack)
	require.NoError(t, err)

	// Even a weapon that would now fail is not re-evaluated.
	r, err := s.Resolve(p, weapon(t, character.WeaponDagger), WeaponAttack)
	require.NoError(t, err)
	assert.Equal(t, AlreadyUsed, r.Outcome)
	assert.False(t, r.Lethal)
	assert.Equal(t, "final_boss.weapon_attack.already_used", r.NarrativeKey)
	assert.True(t, s.UsedWeaponAttack)
	assert.False(t, s.Victory())
}

func TestFinalBossState_FailureKeepsEarlierFlag(t *testing.T) {
	p := readyRogue(t)
	var s FinalBossState

	_, err := s.Resolve(p, weapon(t, character.WeaponShadowDagger), WeaponAttack)
	require.NoError(t, err)

	r, err := s.Resolve(p, weapon(t, character.WeaponWarAxe), ClassAbility)
	require.NoError(t, err)
	assert.Equal(t, Failure, r.Outcome)
	assert.True(t, r.Lethal)
	assert.True(t, s.UsedWeaponAttack)
	assert.False(t, s.UsedClassAbility)
}

func TestFinalBossState_RejectsOtherActions(t *testing.T) {
	var s FinalBossState
	_, err := s.Resolve(readyRogue(t), weapon(t, character.WeaponDagger), Attack)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

// Property: over any sequence of attempts, victory holds exactly when both
// flags are set, flags never clear, and each flag is set by a success of its
// own stage.
func TestPropertyFinalBossFlags(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := player(rt, rapid.SampledFrom(character.AllClasses).Draw(rt, "class"))
		p.Attributes = randomAttributes(rt)
		var s FinalBossState
		steps := rapid.IntRange(1, 6).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			before := s
			action := rapid.SampledFrom([]Action{WeaponAttack, ClassAbility}).Draw(rt, "action")
			w := rapid.SampledFrom(catalog.Weapons()).Draw(rt, "weapon")
			r, err := s.Resolve(p, w, action)
			if err != nil {
				rt.Fatal(err)
			}
			if (before.UsedWeaponAttack && !s.UsedWeaponAttack) || (before.UsedClassAbility && !s.UsedClassAbility) {
				rt.Fatalf("flag cleared: %+v -> %+v", before, s)
			}
			if before.Used(action) && r.Outcome != AlreadyUsed {
				rt.Fatalf("repeat of %s evaluated to %s", action, r.Outcome)
			}
			if r.Outcome == Failure && s != before {
				rt.Fatalf("failure changed flags: %+v -> %+v", before, s)
			}
			if s.Victory() != (s.UsedWeaponAttack && s.UsedClassAbility) {
				rt.Fatalf("victory %v with %+v", s.Victory(), s)
			}
			if r.Lethal {
				return
			}
		}
	})
}
