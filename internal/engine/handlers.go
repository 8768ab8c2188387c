package engine

import (
	"fmt"
	"strings"

	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/combat"
	"github.com/tatianab/caveborn/internal/world"
)

// sceneHandler holds the scene-specific parts of a step. Every field is
// optional.
type sceneHandler struct {
	// enter adds narration after the scene text on arrival.
	enter func(d *Director, pt *Playthrough, first bool, n *narration) error
	// actions lists the scene's own choices. blocked hides the exits.
	actions func(d *Director, pt *Playthrough) (choices []Choice, blocked bool, err error)
	handle  func(d *Director, pt *Playthrough, in Intent, n *narration) (Transition, error)
	// accepts admits intents that are valid without being offered.
	accepts func(d *Director, pt *Playthrough, in Intent) bool
}

func sceneHandlers() map[world.SceneID]sceneHandler {
	return map[world.SceneID]sceneHandler{
		world.CaveEntrance:     {},
		world.SkullChamber:     {actions: skullActions, handle: skullHandle},
		world.PrimitiveVillage: {actions: villageActions, handle: villageHandle},
		world.Alley:            {enter: alleyEnter, actions: alleyActions, handle: alleyHandle},
		world.Armory:           {actions: armoryActions, handle: armoryHandle},
		world.ChiefHouse:       {enter: chiefEnter, actions: chiefActions, handle: chiefHandle},
		world.HealingPool:      {actions: poolActions, handle: poolHandle},
		world.VillageChanged: {
			enter:   finalEnter,
			actions: finalActions,
			handle:  finalHandle,
			accepts: finalAccepts,
		},
	}
}

// narrativeKeys are the keys NewDirector requires the narrative to carry.
var narrativeKeys = []string{
	"game.intro", "intent.invalid", "intent.look", "move.locked",
	"skull.search.found", "village.talk.before", "village.talk.after_chief",
	"alley.creature.appears", "alley.creature.returns", "alley.key.dropped",
	"generic.attack.success", "generic.escape.success", "generic.escape.failure",
	"armory.take.new", "armory.take.already",
	"chief.challenge", "chief.path_revealed",
	"mid_boss.enhanced.success", "mid_boss.enhanced.wrong_class",
	"mid_boss.base.success", "mid_boss.base.too_weak",
	"pool.drink",
	"final_boss.appears", "final_boss.one_remaining",
	"final_boss.weapon_attack.success", "final_boss.weapon_attack.not_enhanced",
	"final_boss.weapon_attack.unready", "final_boss.weapon_attack.already_used",
	"final_boss.class_ability.success", "final_boss.class_ability.wrong_class",
	"final_boss.class_ability.too_weak", "final_boss.class_ability.unready",
	"final_boss.class_ability.already_used",
	"victory", "level_up", "allocate.spent", "level_up.complete",
	"death", "death.prompt", "restart", "quit",
}

// ClassAbility names the special ability each class channels in the final
// encounter.
func ClassAbility(c character.Class) string {
	switch c {
	case character.Rogue:
		return "Shadowstep"
	case character.Warrior:
		return "Bloodrage"
	case character.Mage:
		return "Arcane Surge"
	}
	return "ability"
}

// collected returns the player's weapons in catalog order.
func (d *Director) collected(pt *Playthrough) []*character.Weapon {
	var out []*character.Weapon
	for _, w := range d.catalog.Weapons() {
		if pt.Player.HasWeapon(w.ID) {
			out = append(out, w)
		}
	}
	return out
}

func weaponChoices(ws []*character.Weapon, verb, format string) []Choice {
	choices := make([]Choice, 0, len(ws))
	for _, w := range ws {
		choices = append(choices, Choice{Token: token(verb, w.ID), Label: fmt.Sprintf(format, w.Name)})
	}
	return choices
}

// weapon resolves a weapon argument the player must already hold.
func (d *Director) weapon(pt *Playthrough, id string) (*character.Weapon, error) {
	if !pt.Player.HasWeapon(id) {
		return nil, fmt.Errorf("weapon %q not collected: %w", id, character.ErrUnknownWeapon)
	}
	return d.catalog.Weapon(id)
}

// combatVars fills the template data for a combat outcome.
func combatVars(pt *Playthrough, w *character.Weapon, r combat.Result) vars {
	v := vars{
		Ability:   ClassAbility(pt.Class),
		Damage:    r.Damage,
		Readiness: r.Readiness,
		Required:  combat.StatRequirement,
	}
	if w != nil {
		v.Weapon = w.Name
		v.Attribute = w.ScalingAttribute.Label()
		v.Value = pt.Player.Attributes.Get(w.ScalingAttribute)
	}
	if strings.HasSuffix(r.NarrativeKey, ".unready") {
		v.Required = combat.FinalBossStatRequirement
	}
	return v
}

// Skull chamber: the town key is hidden among the skulls.

func skullActions(_ *Director, pt *Playthrough) ([]Choice, bool, error) {
	if pt.Player.Inventory.Has(character.TownKey) {
		return nil, false, nil
	}
	return []Choice{{Token: VerbSearch, Label: "Search the skulls"}}, false, nil
}

func skullHandle(d *Director, pt *Playthrough, in Intent, n *narration) (Transition, error) {
	key, err := d.catalog.Item(character.TownKey)
	if err != nil {
		return TransitionNone, err
	}
	pt.Player.Inventory.Add(key.ID)
	return TransitionNone, n.say("skull.search.found", vars{Item: key.Name})
}

// Primitive village.

func villageActions(*Director, *Playthrough) ([]Choice, bool, error) {
	return []Choice{{Token: VerbTalk, Label: "Talk to the villagers"}}, false, nil
}

func villageHandle(_ *Director, pt *Playthrough, _ Intent, n *narration) (Transition, error) {
	if pt.Flags.DefeatedChief {
		return TransitionNone, n.say("village.talk.after_chief", vars{})
	}
	return TransitionNone, n.say("village.talk.before", vars{})
}

// Alley: a generic encounter that blocks the way until it is won or fled.

func alleyEnter(_ *Director, pt *Playthrough, first bool, n *narration) error {
	if pt.Flags.AlleyCreatureDead {
		return nil
	}
	if first {
		return n.say("alley.creature.appears", vars{})
	}
	return n.say("alley.creature.returns", vars{})
}

func alleyActions(d *Director, pt *Playthrough) ([]Choice, bool, error) {
	if pt.Flags.AlleyCreatureDead {
		return nil, false, nil
	}
	choices := weaponChoices(d.collected(pt), VerbAttack, "Attack with the %s")
	choices = append(choices, Choice{Token: VerbEscape, Label: "Try to escape"})
	return choices, true, nil
}

func alleyHandle(d *Director, pt *Playthrough, in Intent, n *narration) (Transition, error) {
	switch in.Verb {
	case VerbAttack:
		w, err := d.weapon(pt, in.Arg)
		if err != nil {
			return TransitionNone, err
		}
		r, err := combat.Resolve(pt.Player, w, combat.Generic, combat.Attack)
		if err != nil {
			return TransitionNone, err
		}
		if err := n.say(r.NarrativeKey, combatVars(pt, w, r)); err != nil {
			return TransitionNone, err
		}
		pt.Flags.AlleyCreatureDead = true
		key, err := d.catalog.Item(character.ArmoryKey)
		if err != nil {
			return TransitionNone, err
		}
		if pt.Player.Inventory.Add(key.ID) {
			if err := n.say("alley.key.dropped", vars{Item: key.Name}); err != nil {
				return TransitionNone, err
			}
		}
		return d.levelUp(pt, n)
	case VerbEscape:
		r, err := combat.Resolve(pt.Player, nil, combat.Generic, combat.Escape)
		if err != nil {
			return TransitionNone, err
		}
		if err := n.say(r.NarrativeKey, vars{}); err != nil {
			return TransitionNone, err
		}
		if r.Lethal {
			return d.die(pt, n)
		}
		pt.Flags.RogueEscapedAlley = true
		village, err := d.world.Scene(world.PrimitiveVillage)
		if err != nil {
			return TransitionNone, err
		}
		return TransitionMove, d.enter(pt, village, n)
	}
	return TransitionNone, fmt.Errorf("alley does not handle %q", in.Token())
}

// Armory: every enhanced weapon can be taken once.

func armoryActions(d *Director, pt *Playthrough) ([]Choice, bool, error) {
	var choices []Choice
	for _, w := range d.catalog.Weapons() {
		if !w.Enhanced() {
			continue
		}
		label := "Take the " + w.Name
		if pt.Player.HasWeapon(w.ID) {
			label += " (already yours)"
		}
		choices = append(choices, Choice{Token: token(VerbTake, w.ID), Label: label})
	}
	return choices, false, nil
}

func armoryHandle(d *Director, pt *Playthrough, in Intent, n *narration) (Transition, error) {
	w, err := d.catalog.Weapon(in.Arg)
	if err != nil {
		return TransitionNone, err
	}
	if !pt.Player.CollectWeapon(w) {
		return TransitionNone, n.say("armory.take.already", vars{Weapon: w.Name})
	}
	return TransitionNone, n.say("armory.take.new", vars{
		Weapon:    w.Name,
		Attribute: w.ScalingAttribute.Label(),
		Power:     w.BasePower,
	})
}

// Chief's house: the mid boss.

func chiefEnter(_ *Director, pt *Playthrough, _ bool, n *narration) error {
	if pt.Flags.DefeatedChief {
		return nil
	}
	return n.say("chief.challenge", vars{})
}

func chiefActions(d *Director, pt *Playthrough) ([]Choice, bool, error) {
	if pt.Flags.DefeatedChief {
		return nil, false, nil
	}
	return weaponChoices(d.collected(pt), VerbFight, "Fight the chief with the %s"), false, nil
}

func chiefHandle(d *Director, pt *Playthrough, in Intent, n *narration) (Transition, error) {
	w, err := d.weapon(pt, in.Arg)
	if err != nil {
		return TransitionNone, err
	}
	r, err := combat.Resolve(pt.Player, w, combat.MidBoss, combat.Attack)
	if err != nil {
		return TransitionNone, err
	}
	if err := n.say(r.NarrativeKey, combatVars(pt, w, r)); err != nil {
		return TransitionNone, err
	}
	if r.Lethal {
		return d.die(pt, n)
	}
	pt.Flags.DefeatedChief = true
	if err := n.say("chief.path_revealed", vars{}); err != nil {
		return TransitionNone, err
	}
	return d.levelUp(pt, n)
}

// Healing pool.

func poolActions(_ *Director, pt *Playthrough) ([]Choice, bool, error) {
	if pt.Flags.ReceivedBlessing {
		return nil, false, nil
	}
	return []Choice{{Token: VerbDrink, Label: "Drink from the pool"}}, false, nil
}

func poolHandle(_ *Director, pt *Playthrough, _ Intent, n *narration) (Transition, error) {
	pt.Flags.ReceivedBlessing = true
	pt.Player.Health = pt.Player.MaxHealth()
	return TransitionNone, n.say("pool.drink", vars{Health: pt.Player.Health})
}

// Changed village: the final boss. Both stages must succeed, in either
// order, and every failure is lethal.

func finalEnter(_ *Director, pt *Playthrough, _ bool, n *narration) error {
	return n.say("final_boss.appears", vars{Ability: ClassAbility(pt.Class)})
}

func finalActions(d *Director, pt *Playthrough) ([]Choice, bool, error) {
	ws := d.collected(pt)
	var choices []Choice
	if !pt.Flags.FinalBoss.UsedWeaponAttack {
		choices = append(choices, weaponChoices(ws, VerbStrike, "Strike with the %s")...)
	}
	if !pt.Flags.FinalBoss.UsedClassAbility {
		format := "Channel " + ClassAbility(pt.Class) + " through the %s"
		choices = append(choices, weaponChoices(ws, VerbAbility, format)...)
	}
	return choices, true, nil
}

// finalAccepts admits a spent stage so the player is told it was used.
func finalAccepts(_ *Director, pt *Playthrough, in Intent) bool {
	return (in.Verb == VerbStrike || in.Verb == VerbAbility) && pt.Player.HasWeapon(in.Arg)
}

func finalHandle(d *Director, pt *Playthrough, in Intent, n *narration) (Transition, error) {
	action := combat.WeaponAttack
	if in.Verb == VerbAbility {
		action = combat.ClassAbility
	}
	w, err := d.weapon(pt, in.Arg)
	if err != nil {
		return TransitionNone, err
	}
	r, err := pt.Flags.FinalBoss.Resolve(pt.Player, w, action)
	if err != nil {
		return TransitionNone, err
	}
	if err := n.say(r.NarrativeKey, combatVars(pt, w, r)); err != nil {
		return TransitionNone, err
	}
	switch {
	case r.Lethal:
		return d.die(pt, n)
	case r.Outcome == combat.AlreadyUsed:
		return TransitionNone, nil
	case pt.Flags.FinalBoss.Victory():
		pt.Status = StatusWon
		return TransitionVictory, n.say("victory", vars{})
	}
	return TransitionNone, n.say("final_boss.one_remaining", vars{})
}
