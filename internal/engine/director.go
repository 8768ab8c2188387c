// Package engine runs a playthrough: it turns a player's chosen intent into
// state changes and narration, one step at a time.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/progression"
	"github.com/tatianab/caveborn/internal/telemetry"
	"github.com/tatianab/caveborn/internal/world"
)

// ErrPlaythroughOver is returned by Step once a playthrough was won or quit.
var ErrPlaythroughOver = errors.New("playthrough is over")

// Transition names the notable thing a step did, if anything.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionMove
	TransitionLevelUp
	TransitionDeath
	TransitionRestart
	TransitionVictory
	TransitionQuit
)

func (t Transition) String() string {
	switch t {
	case TransitionNone:
		return "none"
	case TransitionMove:
		return "move"
	case TransitionLevelUp:
		return "level_up"
	case TransitionDeath:
		return "death"
	case TransitionRestart:
		return "restart"
	case TransitionVictory:
		return "victory"
	case TransitionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// StepResult is everything a presenter needs after one step.
type StepResult struct {
	Narrative  []string
	Scene      world.SceneID
	SceneTitle string
	Status     Status
	Transition Transition
	// Choices are the intents accepted by the next step.
	Choices []Choice
	// Invalid is set when the intent was rejected and nothing changed.
	Invalid bool
}

// Director applies intents to playthroughs.
type Director struct {
	world     *world.Graph
	catalog   *character.Catalog
	narrative *Narrative
	handlers  map[world.SceneID]sceneHandler
	logger    *zap.Logger
	tracer    trace.Tracer
}

// NewDirector wires a director over the given content.
//
// Postcondition: Returns an error if a scene has no handler, an exit
// requires an unknown flag, or a narrative key the director uses is missing.
func NewDirector(g *world.Graph, catalog *character.Catalog, narrative *Narrative, logger *zap.Logger) (*Director, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &Director{
		world:     g,
		catalog:   catalog,
		narrative: narrative,
		handlers:  sceneHandlers(),
		logger:    logger.Named("director"),
		tracer:    telemetry.Tracer("engine"),
	}
	var errs []error
	for _, id := range g.SceneIDs() {
		if _, ok := d.handlers[id]; !ok {
			errs = append(errs, fmt.Errorf("scene %q has no handler", id))
		}
	}
	flags := NewFlags()
	for _, name := range g.ExitFlags() {
		if _, known := flags.Has(name); !known {
			errs = append(errs, fmt.Errorf("exit requires unknown flag %q", name))
		}
	}
	for _, key := range narrativeKeys {
		if !narrative.Has(key) {
			errs = append(errs, fmt.Errorf("narrative %q: %w", key, ErrUnknownNarrative))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("wiring director: %w", err)
	}
	return d, nil
}

// New builds a director over the embedded world, catalog and narrative.
func New(logger *zap.Logger) (*Director, error) {
	g, err := world.Load()
	if err != nil {
		return nil, err
	}
	catalog, err := character.LoadCatalog()
	if err != nil {
		return nil, err
	}
	narrative, err := LoadNarrative()
	if err != nil {
		return nil, err
	}
	return NewDirector(g, catalog, narrative, logger)
}

// Title is the world's title.
func (d *Director) Title() string { return d.world.Title() }

// Catalog is the item catalog the director resolves weapons against.
func (d *Director) Catalog() *character.Catalog { return d.catalog }

// SceneTitle returns the display title of a scene, or its ID if unknown.
func (d *Director) SceneTitle(id world.SceneID) string {
	s, err := d.world.Scene(id)
	if err != nil {
		return string(id)
	}
	return s.Title
}

// NewPlaythrough starts a fresh run of class c at the start scene.
func (d *Director) NewPlaythrough(c character.Class) (*Playthrough, error) {
	p, err := character.NewPlayer(c, d.catalog)
	if err != nil {
		return nil, fmt.Errorf("creating player: %w", err)
	}
	pt := &Playthrough{
		ID:     uuid.NewString(),
		Class:  c,
		Player: p,
		Flags:  NewFlags(),
		Scene:  d.world.Start(),
		Status: StatusPlaying,
	}
	pt.Flags.Visited.Put(pt.Scene)
	d.logger.Info("playthrough started",
		zap.String("playthrough", pt.ID),
		zap.String("class", string(c)),
	)
	return pt, nil
}

// Intro returns the opening narration for a new playthrough.
func (d *Director) Intro(pt *Playthrough) ([]string, error) {
	n := &narration{n: d.narrative}
	start, err := d.catalog.Weapon(pt.Player.EquippedWeapon)
	if err != nil {
		return nil, err
	}
	if err := n.say("game.intro", vars{Class: pt.Class.Label(), Weapon: start.Name}); err != nil {
		return nil, err
	}
	s, err := d.world.Scene(pt.Scene)
	if err != nil {
		return nil, err
	}
	n.line(strings.TrimSpace(s.Description))
	return n.lines, nil
}

// Choices lists the intents the next step of pt accepts, in display order.
func (d *Director) Choices(pt *Playthrough) ([]Choice, error) {
	switch pt.Status {
	case StatusWon, StatusQuit:
		return nil, nil
	case StatusDead:
		return []Choice{
			{Token: VerbRestart, Label: "Restart from the cave entrance"},
			{Token: VerbQuit, Label: "Quit"},
		}, nil
	case StatusAllocating:
		choices := make([]Choice, 0, len(character.AllAttributes)+1)
		for _, a := range character.AllAttributes {
			choices = append(choices, Choice{
				Token: token(VerbAllocate, string(a)),
				Label: fmt.Sprintf("Raise %s (now %d)", a.Label(), pt.Player.Attributes.Get(a)),
			})
		}
		return append(choices, Choice{Token: VerbQuit, Label: "Quit"}), nil
	}

	s, err := d.world.Scene(pt.Scene)
	if err != nil {
		return nil, err
	}
	h := d.handlers[pt.Scene]
	var choices []Choice
	blocked := false
	if h.actions != nil {
		choices, blocked, err = h.actions(d, pt)
		if err != nil {
			return nil, err
		}
	}
	if !blocked {
		for _, e := range s.Exits {
			if !d.exitOpen(pt, e) {
				continue
			}
			label := e.Label
			target, err := d.world.Scene(e.Target)
			if err != nil {
				return nil, err
			}
			if !world.CanEnter(target, pt.Player.Inventory) {
				label += " (locked)"
			}
			choices = append(choices, Choice{Token: token(VerbGo, e.Token), Label: label})
		}
	}
	return append(choices,
		Choice{Token: VerbLook, Label: "Look around"},
		Choice{Token: VerbQuit, Label: "Quit"},
	), nil
}

// exitOpen reports whether an exit is shown: flag-gated exits stay hidden
// until their flag is set.
func (d *Director) exitOpen(pt *Playthrough, e world.Exit) bool {
	if e.RequiresFlag == "" {
		return true
	}
	set, _ := pt.Flags.Has(e.RequiresFlag)
	return set
}

// Step applies one intent token to pt.
//
// Precondition: pt came from NewPlaythrough on this director.
// Postcondition: an intent that is not accepted returns Invalid with pt
// unchanged. Stepping a won or quit playthrough returns ErrPlaythroughOver.
func (d *Director) Step(ctx context.Context, pt *Playthrough, tok string) (StepResult, error) {
	in := ParseIntent(tok)
	_, span := d.tracer.Start(ctx, "Director.Step", trace.WithAttributes(
		attribute.String("playthrough.id", pt.ID),
		attribute.String("scene", string(pt.Scene)),
		attribute.String("intent", in.Token()),
	))
	defer span.End()

	if pt.Status.Over() {
		return StepResult{}, ErrPlaythroughOver
	}
	choices, err := d.Choices(pt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StepResult{}, err
	}
	if !d.accepts(pt, choices, in) {
		text, err := d.narrative.Render("intent.invalid", vars{})
		if err != nil {
			return StepResult{}, err
		}
		d.logger.Debug("intent rejected",
			zap.String("playthrough", pt.ID),
			zap.String("scene", string(pt.Scene)),
			zap.String("intent", in.Token()),
		)
		span.SetAttributes(attribute.Bool("invalid", true))
		return StepResult{
			Narrative:  []string{text},
			Scene:      pt.Scene,
			SceneTitle: d.SceneTitle(pt.Scene),
			Status:     pt.Status,
			Choices:    choices,
			Invalid:    true,
		}, nil
	}

	n := &narration{n: d.narrative}
	tr, err := d.dispatch(pt, in, n)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return StepResult{}, fmt.Errorf("step %q in %s: %w", in.Token(), pt.Scene, err)
	}
	pt.Turns++
	if pt.Status == StatusPlaying && progression.Pending(pt.Player) {
		pt.Status = StatusAllocating
	}
	next, err := d.Choices(pt)
	if err != nil {
		return StepResult{}, err
	}

	span.SetAttributes(
		attribute.String("transition", tr.String()),
		attribute.String("status", pt.Status.String()),
	)
	fields := []zap.Field{
		zap.String("playthrough", pt.ID),
		zap.String("intent", in.Token()),
		zap.String("scene", string(pt.Scene)),
		zap.Stringer("status", pt.Status),
		zap.Stringer("transition", tr),
		zap.Int("turn", pt.Turns),
	}
	switch tr {
	case TransitionDeath, TransitionVictory, TransitionRestart, TransitionQuit:
		d.logger.Info("playthrough "+tr.String(), fields...)
	default:
		d.logger.Debug("step", fields...)
	}

	return StepResult{
		Narrative:  n.lines,
		Scene:      pt.Scene,
		SceneTitle: d.SceneTitle(pt.Scene),
		Status:     pt.Status,
		Transition: tr,
		Choices:    next,
	}, nil
}

// accepts reports whether in may be applied to pt. It never mutates pt.
func (d *Director) accepts(pt *Playthrough, choices []Choice, in Intent) bool {
	if offered(choices, in.Token()) {
		return true
	}
	if pt.Status != StatusPlaying {
		return false
	}
	h := d.handlers[pt.Scene]
	return h.accepts != nil && h.accepts(d, pt, in)
}

func (d *Director) dispatch(pt *Playthrough, in Intent, n *narration) (Transition, error) {
	if in.Verb == VerbQuit {
		pt.Status = StatusQuit
		return TransitionQuit, n.say("quit", vars{})
	}
	switch pt.Status {
	case StatusDead:
		return TransitionRestart, d.restart(pt, n)
	case StatusAllocating:
		return TransitionNone, d.allocate(pt, in.Arg, n)
	}
	switch in.Verb {
	case VerbLook:
		return TransitionNone, d.look(pt, n)
	case VerbGo:
		return d.move(pt, in.Arg, n)
	}
	h := d.handlers[pt.Scene]
	if h.handle == nil {
		return TransitionNone, fmt.Errorf("no handler for %q", in.Token())
	}
	return h.handle(d, pt, in, n)
}

func (d *Director) look(pt *Playthrough, n *narration) error {
	s, err := d.world.Scene(pt.Scene)
	if err != nil {
		return err
	}
	if err := n.say("intent.look", vars{}); err != nil {
		return err
	}
	n.line(strings.TrimSpace(s.Description))
	return nil
}

func (d *Director) move(pt *Playthrough, exitToken string, n *narration) (Transition, error) {
	from, err := d.world.Scene(pt.Scene)
	if err != nil {
		return TransitionNone, err
	}
	e, ok := from.Exit(exitToken)
	if !ok {
		return TransitionNone, fmt.Errorf("scene %s has no exit %q", pt.Scene, exitToken)
	}
	to, err := d.world.Scene(e.Target)
	if err != nil {
		return TransitionNone, err
	}
	if !world.CanEnter(to, pt.Player.Inventory) {
		key, err := d.catalog.Item(to.RequiredKey)
		if err != nil {
			return TransitionNone, err
		}
		return TransitionNone, n.say("move.locked", vars{Scene: to.Title, Item: key.Name})
	}
	return TransitionMove, d.enter(pt, to, n)
}

// enter moves pt into s and narrates the arrival.
func (d *Director) enter(pt *Playthrough, s *world.Scene, n *narration) error {
	first := !pt.Flags.Visited.Has(s.ID)
	pt.Scene = s.ID
	pt.Flags.Visited.Put(s.ID)
	text := s.Description
	if !first && s.Revisit != "" {
		text = s.Revisit
	}
	n.line(strings.TrimSpace(text))
	if h := d.handlers[s.ID]; h.enter != nil {
		return h.enter(d, pt, first, n)
	}
	return nil
}

// restart replaces pt with a fresh run of the same class. The turn count
// carries over.
func (d *Director) restart(pt *Playthrough, n *narration) error {
	fresh, err := d.NewPlaythrough(pt.Class)
	if err != nil {
		return err
	}
	turns := pt.Turns
	*pt = *fresh
	pt.Turns = turns
	start, err := d.catalog.Weapon(pt.Player.EquippedWeapon)
	if err != nil {
		return err
	}
	if err := n.say("restart", vars{Weapon: start.Name}); err != nil {
		return err
	}
	s, err := d.world.Scene(pt.Scene)
	if err != nil {
		return err
	}
	n.line(strings.TrimSpace(s.Description))
	return nil
}

func (d *Director) allocate(pt *Playthrough, arg string, n *narration) error {
	attr, err := character.ParseAttribute(arg)
	if err != nil {
		return err
	}
	if err := progression.Allocate(pt.Player, attr); err != nil {
		return err
	}
	err = n.say("allocate.spent", vars{
		Attribute: attr.Label(),
		Value:     pt.Player.Attributes.Get(attr),
		Points:    pt.Player.AttributePoints,
	})
	if err != nil {
		return err
	}
	if progression.Pending(pt.Player) {
		return nil
	}
	pt.Status = StatusPlaying
	return n.say("level_up.complete", vars{})
}

// levelUp grants a level; Step holds the playthrough in StatusAllocating
// until the points are spent.
func (d *Director) levelUp(pt *Playthrough, n *narration) (Transition, error) {
	progression.LevelUp(pt.Player)
	return TransitionLevelUp, n.say("level_up", vars{
		Level:  pt.Player.Level,
		Points: pt.Player.AttributePoints,
	})
}

// die narrates the fatal outcome already said by the caller and ends the
// run until a restart.
func (d *Director) die(pt *Playthrough, n *narration) (Transition, error) {
	pt.Player.Health = 0
	pt.Status = StatusDead
	if err := n.say("death", vars{}); err != nil {
		return TransitionDeath, err
	}
	return TransitionDeath, n.say("death.prompt", vars{})
}
