// Package tui presents the game in a terminal: a full-screen bubbletea
// interface and a plain line console.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/engine"
)

type sessionState int

const (
	stateClassSelect sessionState = iota
	statePlaying
	stateOver
	stateError
)

// Options configures a TUI session.
type Options struct {
	// Class skips the class prompt when set.
	Class character.Class
	// Observe is called after every step.
	Observe engine.Observer
}

type model struct {
	ctx       context.Context
	state     sessionState
	director  *engine.Director
	opts      Options
	pt        *engine.Playthrough
	choices   []engine.Choice
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D7875F")).
			Italic(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	choiceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AFD7FF"))

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

func newModel(ctx context.Context, d *engine.Director, opts Options) model {
	ti := textinput.New()
	ti.Placeholder = "rogue, warrior or mage"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 40

	m := model{
		ctx:       ctx,
		state:     stateClassSelect,
		director:  d,
		opts:      opts,
		textInput: ti,
		viewport:  viewport.New(80, 20),
		width:     100,
		height:    30,
	}
	if opts.Class != "" {
		m = m.start(opts.Class)
	}
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			input := strings.TrimSpace(m.textInput.Value())
			m.textInput.Reset()
			switch m.state {
			case stateClassSelect:
				c, err := character.ParseClass(input)
				if err != nil {
					m.textInput.Placeholder = "choose rogue, warrior or mage"
					return m, nil
				}
				return m.start(c), nil
			case statePlaying:
				if input == "" {
					return m, nil
				}
				m = m.step(input)
				if m.state != statePlaying {
					m.textInput.Blur()
				}
				return m, nil
			case stateOver, stateError:
				return m, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = max(msg.Height-len(m.choices)-8, 5)
		m.viewport.SetContent(m.gameLog)
		m.viewport.GotoBottom()
	}

	if m.state == stateClassSelect || m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// start begins a playthrough of class c.
func (m model) start(c character.Class) model {
	pt, err := m.director.NewPlaythrough(c)
	if err != nil {
		return m.fail(err)
	}
	intro, err := m.director.Intro(pt)
	if err != nil {
		return m.fail(err)
	}
	choices, err := m.director.Choices(pt)
	if err != nil {
		return m.fail(err)
	}
	m.pt = pt
	m.choices = choices
	m.state = statePlaying
	m.textInput.Placeholder = "Pick a number or type a command"
	m.gameLog = gameStyle.Bold(true).Render(m.director.Title()) + "\n\n"
	m.appendNarrative(intro, false)
	return m
}

// step applies the player's input to the playthrough.
func (m model) step(input string) model {
	tok := resolveChoice(input, m.choices)
	m.gameLog += userStyle.Width(m.logWidth()).Render("> "+input) + "\n\n"

	res, err := m.director.Step(m.ctx, m.pt, tok)
	if err != nil {
		return m.fail(err)
	}
	if m.opts.Observe != nil {
		m.opts.Observe(m.pt, tok, res)
	}
	m.appendNarrative(res.Narrative, res.Invalid)
	m.choices = res.Choices
	if m.pt.Status.Over() {
		m.state = stateOver
	}
	return m
}

func (m *model) appendNarrative(lines []string, warn bool) {
	style := gameStyle
	if warn {
		style = warnStyle
	}
	for _, line := range lines {
		m.gameLog += style.Width(m.logWidth()).Render(line) + "\n\n"
	}
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) fail(err error) model {
	m.err = err
	m.state = stateError
	return m
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.70)
}

func (m model) View() string {
	var s string

	switch m.state {
	case stateClassSelect:
		s = fmt.Sprintf(
			"Welcome to %s!\n\n%s\n\n%s",
			m.director.Title(),
			"Choose your class:\n  Rogue (agility, dagger)\n  Warrior (strength, axe)\n  Mage (intelligence, wand)",
			m.textInput.View(),
		)

	case statePlaying, stateOver:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		parts := []string{mainView}
		if m.state == statePlaying {
			parts = append(parts, "\n"+m.renderChoices(), m.textInput.View())
			parts = append(parts, "\n"+helpStyle.Render("Enter a number, or a command such as go:enter. Esc quits."))
		} else {
			parts = append(parts, "\n"+helpStyle.Render(fmt.Sprintf("The game is over (%s). Press Enter to leave.", m.pt.Status)))
		}
		s = lipgloss.JoinVertical(lipgloss.Left, parts...)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderChoices() string {
	var b strings.Builder
	for i, c := range m.choices {
		b.WriteString(choiceStyle.Render(fmt.Sprintf("%2d) %s", i+1, c.Label)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) renderState() string {
	if m.pt == nil {
		return ""
	}
	p := m.pt.Player
	catalog := m.director.Catalog()

	location := titleStyle.Render("LOCATION") + "\n" + m.director.SceneTitle(m.pt.Scene) + "\n\n"

	stats := titleStyle.Render("STATS") + "\n"
	stats += fmt.Sprintf("Class: %s\nHealth: %d/%d\nLevel: %d\n", p.Class.Label(), p.Health, p.MaxHealth(), p.Level)
	if p.AttributePoints > 0 {
		stats += fmt.Sprintf("Points to spend: %d\n", p.AttributePoints)
	}
	for _, a := range character.AllAttributes {
		stats += fmt.Sprintf("%s: %d\n", a.Label(), p.Attributes.Get(a))
	}
	stats += "\n"

	weapons := titleStyle.Render("WEAPONS") + "\n"
	for _, id := range p.CollectedWeapons() {
		if w, err := catalog.Weapon(id); err == nil {
			weapons += fmt.Sprintf("- %s (%d)\n", w.Name, w.BasePower)
		}
	}
	weapons += "\n"

	inventory := titleStyle.Render("INVENTORY") + "\n"
	items := p.Inventory.Items()
	if len(items) == 0 {
		inventory += "(empty)"
	}
	for _, id := range items {
		if it, err := catalog.Item(id); err == nil {
			inventory += "- " + it.Name + "\n"
		}
	}

	content := location + stats + weapons + inventory
	stateWidth := int(float64(m.width) * 0.27)
	return stateStyle.Width(stateWidth).Height(m.viewport.Height).Render(content)
}

// Run plays one game in the terminal and returns the final playthrough,
// which is nil if the player left before choosing a class.
func Run(ctx context.Context, d *engine.Director, opts Options) (*engine.Playthrough, error) {
	p := tea.NewProgram(newModel(ctx, d, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	m := final.(model)
	if m.err != nil {
		return m.pt, m.err
	}
	return m.pt, nil
}
