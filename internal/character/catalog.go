package character

import (
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed items.yaml
var itemsYAML []byte

// Weapon IDs referenced by the rules.
const (
	WeaponDagger = "dagger"
	WeaponAxe    = "axe"
	WeaponWand   = "wand"

	WeaponShadowDagger = "shadow_dagger"
	WeaponWarAxe       = "war_axe"
	WeaponStarWand     = "star_wand"
)

// Key item IDs.
const (
	ArmoryKey = "armory_key"
	TownKey   = "town_key"
)

// Tier separates starting weapons from their upgrades.
type Tier string

const (
	TierBase     Tier = "base"
	TierEnhanced Tier = "enhanced"
)

// Sentinel lookup errors.
var (
	ErrUnknownWeapon = errors.New("unknown weapon")
	ErrUnknownItem   = errors.New("unknown item")
)

// Item is anything the player can hold.
type Item struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// Weapon is an item with combat stats.
type Weapon struct {
	Item             `yaml:",inline"`
	BasePower        int       `yaml:"base_power"`
	ScalingAttribute Attribute `yaml:"scaling_attribute"`
	Tier             Tier      `yaml:"tier"`
}

// Enhanced reports whether w is an upgraded weapon.
func (w *Weapon) Enhanced() bool { return w.Tier == TierEnhanced }

// Validate checks that the weapon satisfies its invariants.
//
// Postcondition: returns nil iff all fields are valid.
func (w *Weapon) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if w.BasePower < 0 {
		errs = append(errs, errors.New("BasePower must be >= 0"))
	}
	if !w.ScalingAttribute.Scaling() {
		errs = append(errs, fmt.Errorf("ScalingAttribute must be agility, strength or intelligence; got %q", w.ScalingAttribute))
	}
	if w.Tier != TierBase && w.Tier != TierEnhanced {
		errs = append(errs, fmt.Errorf("Tier must be base or enhanced; got %q", w.Tier))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q validation failed: %v", w.ID, errs)
	}
	return nil
}

type yamlCatalog struct {
	Keys    []Item   `yaml:"keys"`
	Weapons []Weapon `yaml:"weapons"`
}

// Catalog holds every item and weapon definition indexed by ID.
type Catalog struct {
	items   map[string]*Item
	weapons map[string]*Weapon
}

// LoadCatalog parses and validates the embedded item definitions.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFromBytes(itemsYAML)
}

// MustLoadCatalog is LoadCatalog for callers that cannot run without items.
func MustLoadCatalog() *Catalog {
	c, err := LoadCatalog()
	if err != nil {
		panic(fmt.Sprintf("loading item catalog: %v", err))
	}
	return c
}

// LoadCatalogFromBytes parses and validates item definitions from YAML.
//
// Postcondition: the catalog holds exactly one base and one enhanced weapon
// per scaling attribute, or a non-nil error is returned.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var y yamlCatalog
	if err := yaml.Unmarshal(data, &y); err != nil {
		return nil, fmt.Errorf("parsing items YAML: %w", err)
	}
	c := &Catalog{
		items:   make(map[string]*Item),
		weapons: make(map[string]*Weapon),
	}
	for i := range y.Keys {
		k := y.Keys[i]
		if k.ID == "" || k.Name == "" {
			return nil, fmt.Errorf("key item %d: id and name must not be empty", i)
		}
		if err := c.register(&k); err != nil {
			return nil, err
		}
	}
	for i := range y.Weapons {
		w := y.Weapons[i]
		w.Description = strings.TrimSpace(w.Description)
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if err := c.register(&w.Item); err != nil {
			return nil, err
		}
		c.weapons[w.ID] = &w
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) register(it *Item) error {
	if _, exists := c.items[it.ID]; exists {
		return fmt.Errorf("item ID %q already registered", it.ID)
	}
	c.items[it.ID] = it
	return nil
}

func (c *Catalog) validate() error {
	for _, a := range []Attribute{Agility, Strength, Intelligence} {
		for _, tier := range []Tier{TierBase, TierEnhanced} {
			n := 0
			for _, w := range c.weapons {
				if w.ScalingAttribute == a && w.Tier == tier {
					n++
				}
			}
			if n != 1 {
				return fmt.Errorf("want exactly one %s %s weapon, got %d", tier, a, n)
			}
		}
	}
	for _, cl := range AllClasses {
		w, ok := c.weapons[cl.StartingWeapon()]
		if !ok {
			return fmt.Errorf("starting weapon %q for %s: %w", cl.StartingWeapon(), cl, ErrUnknownWeapon)
		}
		if w.Enhanced() || w.ScalingAttribute != cl.Attribute() {
			return fmt.Errorf("starting weapon %q does not suit %s", w.ID, cl)
		}
	}
	for _, id := range []string{ArmoryKey, TownKey} {
		if _, ok := c.items[id]; !ok {
			return fmt.Errorf("key %q: %w", id, ErrUnknownItem)
		}
	}
	return nil
}

// Weapon returns the weapon with the given ID.
//
// Postcondition: Returns the weapon or an error wrapping ErrUnknownWeapon.
func (c *Catalog) Weapon(id string) (*Weapon, error) {
	w, ok := c.weapons[id]
	if !ok {
		return nil, fmt.Errorf("weapon %q: %w", id, ErrUnknownWeapon)
	}
	return w, nil
}

// Item returns the item with the given ID. Weapons are items too.
func (c *Catalog) Item(id string) (*Item, error) {
	it, ok := c.items[id]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, ErrUnknownItem)
	}
	return it, nil
}

// EnhancedFor returns the enhanced weapon scaling with a.
func (c *Catalog) EnhancedFor(a Attribute) (*Weapon, error) {
	for _, w := range c.weapons {
		if w.Enhanced() && w.ScalingAttribute == a {
			return w, nil
		}
	}
	return nil, fmt.Errorf("enhanced %s weapon: %w", a, ErrUnknownWeapon)
}

// Weapons returns every weapon, base tier first, then by ID.
func (c *Catalog) Weapons() []*Weapon {
	out := make([]*Weapon, 0, len(c.weapons))
	for _, w := range c.weapons {
		out = append(out, w)
	}
	sortWeapons(out)
	return out
}

func sortWeapons(ws []*Weapon) {
	sort.Slice(ws, func(i, j int) bool {
		if ws[i].Tier != ws[j].Tier {
			return ws[i].Tier == TierBase
		}
		return ws[i].ID < ws[j].ID
	})
}
