package character_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/tatianab/caveborn/internal/character"
)

func newPlayer(t require.TestingT, c character.Class) *character.Player {
	p, err := character.NewPlayer(c, character.MustLoadCatalog())
	require.NoError(t, err)
	return p
}

func TestNewPlayer_StartingWeapons(t *testing.T) {
	want := map[character.Class]string{
		character.Rogue:   character.WeaponDagger,
		character.Warrior: character.WeaponAxe,
		character.Mage:    character.WeaponWand,
	}
	for class, weapon := range want {
		p := newPlayer(t, class)
		assert.Equal(t, weapon, p.EquippedWeapon)
		assert.Equal(t, []string{weapon}, p.CollectedWeapons())
		assert.Equal(t, 1, p.Level)
		assert.Equal(t, 0, p.AttributePoints)
		assert.Equal(t, character.NewAttributes(), p.Attributes)
		assert.Equal(t, p.MaxHealth(), p.Health)
		assert.Zero(t, p.Inventory.Len())
	}
}

func TestNewPlayer_UnknownClass(t *testing.T) {
	_, err := character.NewPlayer("bard", character.MustLoadCatalog())
	require.Error(t, err)
	assert.True(t, errors.Is(err, character.ErrUnknownClass))
}

func TestParseAttribute(t *testing.T) {
	a, err := character.ParseAttribute(" Agility ")
	require.NoError(t, err)
	assert.Equal(t, character.Agility, a)

	_, err = character.ParseAttribute("charisma")
	assert.True(t, errors.Is(err, character.ErrUnknownAttribute))
}

func TestAttributes_AddUnknownLeavesValues(t *testing.T) {
	attrs := character.NewAttributes()
	err := attrs.Add("luck", 3)
	assert.True(t, errors.Is(err, character.ErrUnknownAttribute))
	assert.Equal(t, character.NewAttributes(), attrs)
}

func TestCatalog_Weapons(t *testing.T) {
	cat := character.MustLoadCatalog()
	ws := cat.Weapons()
	require.Len(t, ws, 6)
	for _, w := range ws[:3] {
		assert.Equal(t, character.TierBase, w.Tier)
	}
	for _, a := range []character.Attribute{character.Agility, character.Strength, character.Intelligence} {
		e, err := cat.EnhancedFor(a)
		require.NoError(t, err)
		assert.True(t, e.Enhanced())
		assert.Equal(t, a, e.ScalingAttribute)
	}
	_, err := cat.Weapon("spoon")
	assert.True(t, errors.Is(err, character.ErrUnknownWeapon))
	_, err = cat.Item(character.TownKey)
	assert.NoError(t, err)
}

func TestLoadCatalogFromBytes_RejectsMissingEnhanced(t *testing.T) {
	data := []byte(`
keys:
  - {id: armory_key, name: A}
  - {id: town_key, name: T}
weapons:
  - {id: dagger, name: D, base_power: 1, scaling_attribute: agility, tier: base}
  - {id: axe, name: X, base_power: 1, scaling_attribute: strength, tier: base}
  - {id: wand, name: W, base_power: 1, scaling_attribute: intelligence, tier: base}
`)
	_, err := character.LoadCatalogFromBytes(data)
	assert.Error(t, err)
}

func TestLoadCatalogFromBytes_RejectsBadScaling(t *testing.T) {
	data := []byte(`
weapons:
  - {id: dagger, name: D, base_power: 1, scaling_attribute: vitality, tier: base}
`)
	_, err := character.LoadCatalogFromBytes(data)
	assert.Error(t, err)
}

func TestIsClassWeapon_ByAttribute(t *testing.T) {
	cat := character.MustLoadCatalog()
	p := newPlayer(t, character.Rogue)
	shadow, err := cat.Weapon(character.WeaponShadowDagger)
	require.NoError(t, err)
	axe, err := cat.Weapon(character.WeaponWarAxe)
	require.NoError(t, err)

	copyOfShadow := *shadow
	assert.True(t, p.IsClassWeapon(shadow))
	assert.True(t, p.IsClassWeapon(&copyOfShadow))
	assert.False(t, p.IsClassWeapon(axe))
}

// Property: collecting the same weapon any number of times adds it once.
func TestPropertyCollectWeaponIdempotent(t *testing.T) {
	cat := character.MustLoadCatalog()
	rapid.Check(t, func(rt *rapid.T) {
		class := rapid.SampledFrom(character.AllClasses).Draw(rt, "class")
		w := rapid.SampledFrom(cat.Weapons()).Draw(rt, "weapon")
		times := rapid.IntRange(1, 5).Draw(rt, "times")
		p := newPlayer(rt, class)

		before := len(p.CollectedWeapons())
		first := p.CollectWeapon(w)
		after := len(p.CollectedWeapons())
		if first != (after == before+1) {
			rt.Fatalf("first collect reported %v, size %d -> %d", first, before, after)
		}
		for i := 1; i < times; i++ {
			if p.CollectWeapon(w) {
				rt.Fatalf("collect %d of %s reported new", i+1, w.ID)
			}
		}
		if len(p.CollectedWeapons()) != after {
			rt.Fatalf("collected size changed after first call: %d != %d", len(p.CollectedWeapons()), after)
		}
	})
}

// Property: adding the same item twice leaves the inventory size unchanged.
func TestPropertyInventoryAddIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ids := rapid.SliceOf(rapid.SampledFrom([]string{
			character.ArmoryKey, character.TownKey, "torch", "rope",
		})).Draw(rt, "ids")
		inv := character.NewInventory()
		distinct := map[string]bool{}
		for _, id := range ids {
			added := inv.Add(id)
			if added == distinct[id] {
				rt.Fatalf("Add(%q) = %v with held=%v", id, added, distinct[id])
			}
			distinct[id] = true
		}
		if inv.Len() != len(distinct) {
			rt.Fatalf("Len %d, want %d", inv.Len(), len(distinct))
		}
	})
}

func TestInventory_Remove(t *testing.T) {
	inv := character.NewInventory()
	inv.Add(character.TownKey)
	inv.Add("torch")
	assert.True(t, inv.Remove("torch"))
	assert.False(t, inv.Remove("torch"))
	assert.Equal(t, []string{character.TownKey}, inv.Items())
}

// Property: damage is base power plus the scaling attribute.
func TestPropertyDamage(t *testing.T) {
	cat := character.MustLoadCatalog()
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.SampledFrom(cat.Weapons()).Draw(rt, "weapon")
		p := newPlayer(rt, rapid.SampledFrom(character.AllClasses).Draw(rt, "class"))
		p.Attributes = character.Attributes{
			Vitality:     rapid.IntRange(0, 50).Draw(rt, "vit"),
			Agility:      rapid.IntRange(0, 50).Draw(rt, "agi"),
			Strength:     rapid.IntRange(0, 50).Draw(rt, "str"),
			Intelligence: rapid.IntRange(0, 50).Draw(rt, "int"),
		}
		want := w.BasePower + p.Attributes.Get(w.ScalingAttribute)
		if got := character.Damage(w, p); got != want {
			rt.Fatalf("Damage(%s) = %d, want %d", w.ID, got, want)
		}
	})
}
