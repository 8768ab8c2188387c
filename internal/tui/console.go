package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/engine"
)

// Console is an engine.Presenter over a line-oriented reader and writer.
type Console struct {
	in    *bufio.Scanner
	out   io.Writer
	width int
}

// NewConsole reads choices from r and writes narration to w.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewScanner(r), out: w, width: 78}
}

// Display prints each narration line as its own paragraph.
func (c *Console) Display(lines []string) {
	style := lipgloss.NewStyle().Width(c.width)
	for _, line := range lines {
		fmt.Fprintln(c.out, style.Render(line))
		fmt.Fprintln(c.out)
	}
}

// Prompt lists the choices and reads one non-empty line. It returns io.EOF
// when input runs out.
func (c *Console) Prompt(ctx context.Context, choices []engine.Choice) (string, error) {
	for i, ch := range choices {
		fmt.Fprintf(c.out, "%2d) %s\n", i+1, ch.Label)
	}
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		input := strings.TrimSpace(c.in.Text())
		if input == "" {
			continue
		}
		fmt.Fprintln(c.out)
		return resolveChoice(input, choices), nil
	}
}

// ChooseClass asks for a class until a valid one is entered.
func (c *Console) ChooseClass(ctx context.Context) (character.Class, error) {
	choices := make([]engine.Choice, len(character.AllClasses))
	for i, cl := range character.AllClasses {
		choices[i] = engine.Choice{Token: string(cl), Label: cl.Label()}
	}
	fmt.Fprintln(c.out, "Choose your class:")
	for {
		tok, err := c.Prompt(ctx, choices)
		if err != nil {
			return "", err
		}
		if cl, err := character.ParseClass(tok); err == nil {
			return cl, nil
		}
		fmt.Fprintln(c.out, "That is not a class.")
	}
}

// resolveChoice maps a choice number to its token. Anything else is passed
// through as a typed token for the director to accept or reject.
func resolveChoice(input string, choices []engine.Choice) string {
	input = strings.TrimSpace(input)
	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(choices) {
		return choices[n-1].Token
	}
	return engine.ParseIntent(input).Token()
}
