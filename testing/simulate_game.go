// Command simulate_game lets a Gemini model play Caveborn through the same
// choice interface a human uses, and saves the transcript.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/tatianab/caveborn/internal/app"
	"github.com/tatianab/caveborn/internal/character"
	"github.com/tatianab/caveborn/internal/engine"
)

// historyLines bounds how much narration is replayed to the model.
const historyLines = 24

var errTurnLimit = errors.New("turn limit reached")

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Note: .env file not loaded: %v", err)
	}
	ctx := context.Background()

	a, err := app.New(ctx, app.Options{ConfigPath: os.Getenv("CAVEBORN_CONFIG")})
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}
	defer a.Close(ctx)
	if err := a.Config.RequireGemini(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(a.Config.Gemini.APIKey))
	if err != nil {
		log.Fatalf("Failed to create player client: %v", err)
	}
	defer client.Close()
	player := &llmPlayer{
		model:    client.GenerativeModel(a.Config.Gemini.Model),
		maxTurns: a.Config.Simulate.MaxTurns,
		logger:   a.Logger.Named("simulate"),
	}

	// 1. Let the player pick a class
	fmt.Println("--- Step 1: Requesting a class from the Player LLM ---")
	class := player.chooseClass(ctx)
	fmt.Printf("Player chose: %s\n\n", class.Label())

	// 2. Play the game
	fmt.Println("--- Step 2: Playing ---")
	rec := a.NewRecorder()
	pt, err := engine.Run(ctx, a.Director, player, class, func(pt *engine.Playthrough, intent string, res engine.StepResult) {
		rec.Observe(pt, intent, res)
		fmt.Printf("--- Turn %d: %s ---\n", pt.Turns, intent)
		fmt.Printf("Scene: %s  Status: %s  Health: %d  Level: %d\n",
			res.SceneTitle, res.Status, pt.Player.Health, pt.Player.Level)
	})
	switch {
	case errors.Is(err, errTurnLimit):
		fmt.Printf("Stopped after %d turns.\n", player.turns)
	case err != nil:
		fmt.Printf("Error during play: %v\n", err)
	}

	if pt != nil {
		fmt.Printf("Game Ended: %s\n", pt.Status)
	}
	if path, err := a.SaveTranscript(rec, pt); err == nil && path != "" {
		fmt.Printf("Transcript: %s\n", path)
	}
}

// llmPlayer is an engine.Presenter backed by a generative model.
type llmPlayer struct {
	model    *genai.GenerativeModel
	maxTurns int
	turns    int
	history  []string
	logger   *zap.Logger
}

func (p *llmPlayer) Display(lines []string) {
	for _, line := range lines {
		fmt.Println(line)
		fmt.Println()
	}
	p.history = append(p.history, lines...)
	if len(p.history) > historyLines {
		p.history = p.history[len(p.history)-historyLines:]
	}
}

func (p *llmPlayer) Prompt(ctx context.Context, choices []engine.Choice) (string, error) {
	if p.turns >= p.maxTurns {
		return "", errTurnLimit
	}
	p.turns++

	reply, err := p.ask(ctx, buildPrompt(p.history, choices))
	if err != nil {
		p.logger.Warn("player model failed, looking around", zap.Error(err))
		return engine.VerbLook, nil
	}
	return parseReply(reply, choices), nil
}

func (p *llmPlayer) chooseClass(ctx context.Context) character.Class {
	prompt := "You are about to play a text adventure in a cave full of skulls. " +
		"Choose a class: rogue (agility, dagger), warrior (strength, axe) or mage (intelligence, wand). " +
		"Return ONLY the class name."
	reply, err := p.ask(ctx, prompt)
	if err != nil {
		p.logger.Warn("player model failed, playing a rogue", zap.Error(err))
		return character.Rogue
	}
	c, err := character.ParseClass(strings.Trim(reply, " .\n\"'"))
	if err != nil {
		return character.Rogue
	}
	return c
}

func (p *llmPlayer) ask(ctx context.Context, prompt string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}

func buildPrompt(history []string, choices []engine.Choice) string {
	var b strings.Builder
	b.WriteString("You are playing a text adventure. Here is what happened most recently:\n\n")
	for _, line := range history {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\nYour options:\n")
	for i, c := range choices {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Label)
	}
	b.WriteString("\nPlay to win. Return ONLY the number of your choice, no extra commentary.")
	return b.String()
}

// parseReply reads the chosen number from a model reply, falling back to
// the first choice.
func parseReply(reply string, choices []engine.Choice) string {
	if len(choices) == 0 {
		return engine.VerbLook
	}
	fields := strings.FieldsFunc(reply, func(r rune) bool { return r < '0' || r > '9' })
	for _, f := range fields {
		if n, err := strconv.Atoi(f); err == nil && n >= 1 && n <= len(choices) {
			return choices[n-1].Token
		}
	}
	return choices[0].Token
}
