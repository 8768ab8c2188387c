package models

import (
	"strings"
	"time"

	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/engine"
)

// Recorder builds a Transcript from the steps of engine.Run. Pass
// (*Recorder).Observe as the run's observer and call Finish once it returns.
type Recorder struct {
	t   Transcript
	now func() time.Time
}

// NewRecorder starts a transcript for a game titled title.
func NewRecorder(title string) *Recorder {
	return newRecorder(title, time.Now)
}

func newRecorder(title string, now func() time.Time) *Recorder {
	return &Recorder{t: Transcript{Title: title, StartedAt: now()}, now: now}
}

// Observe records one step. It satisfies engine.Observer.
func (r *Recorder) Observe(pt *engine.Playthrough, intent string, res engine.StepResult) {
	r.identify(pt)
	if res.Transition == engine.TransitionRestart {
		r.t.Restarts++
	}
	entry := HistoryEntry{
		Turn:         len(r.t.History) + 1,
		PlayerAction: intent,
		Outcome:      strings.Join(res.Narrative, "\n"),
		Scene:        string(res.Scene),
		Status:       res.Status.String(),
		Invalid:      res.Invalid,
		Inventory:    pt.Player.Inventory.Items(),
	}
	if res.Transition != engine.TransitionNone {
		entry.Transition = res.Transition.String()
	}
	r.t.History = append(r.t.History, entry)
}

// Finish stamps the final status and player state and returns the
// transcript. pt may be nil if the run never started.
func (r *Recorder) Finish(pt *engine.Playthrough) *Transcript {
	r.t.EndedAt = r.now()
	if pt == nil {
		return &r.t
	}
	r.identify(pt)
	r.t.Status = pt.Status.String()
	r.t.Player = snapshot(pt.Player)
	return &r.t
}

// identify keeps the ID of the first playthrough across restarts.
func (r *Recorder) identify(pt *engine.Playthrough) {
	if r.t.ID == "" {
		r.t.ID = pt.ID
		r.t.Class = string(pt.Class)
	}
}

func snapshot(p *character.Player) PlayerState {
	attrs := make(map[string]int, len(character.AllAttributes))
	for _, a := range character.AllAttributes {
		attrs[string(a)] = p.Attributes.Get(a)
	}
	return PlayerState{
		Level:      p.Level,
		Health:     p.Health,
		Attributes: attrs,
		Weapons:    p.CollectedWeapons(),
		Inventory:  p.Inventory.Items(),
	}
}
