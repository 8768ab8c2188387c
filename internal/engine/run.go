package engine

import (
	"context"
	"fmt"

	"github.com/tatianab/caveborn/internal/character"
)

// Presenter shows narration and collects the player's choice. It knows
// nothing about game rules.
type Presenter interface {
	Display(lines []string)
	// Prompt returns the token of the chosen intent. Returning an error
	// ends the run.
	Prompt(ctx context.Context, choices []Choice) (string, error)
}

// Observer is called after every step, for transcripts and tests.
type Observer func(pt *Playthrough, intent string, res StepResult)

// Run plays one playthrough of class c to the end: victory, quit, a
// presenter error, or ctx cancellation.
func Run(ctx context.Context, d *Director, p Presenter, c character.Class, observe Observer) (*Playthrough, error) {
	pt, err := d.NewPlaythrough(c)
	if err != nil {
		return nil, err
	}
	intro, err := d.Intro(pt)
	if err != nil {
		return pt, err
	}
	p.Display(intro)

	for !pt.Status.Over() {
		if err := ctx.Err(); err != nil {
			return pt, err
		}
		choices, err := d.Choices(pt)
		if err != nil {
			return pt, err
		}
		tok, err := p.Prompt(ctx, choices)
		if err != nil {
			return pt, fmt.Errorf("prompting for turn %d: %w", pt.Turns+1, err)
		}
		res, err := d.Step(ctx, pt, tok)
		if err != nil {
			return pt, err
		}
		if observe != nil {
			observe(pt, tok, res)
		}
		p.Display(res.Narrative)
	}
	return pt, nil
}
