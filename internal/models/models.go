// Package models holds the transcript of a playthrough: what the player
// chose each turn and what the game answered. Transcripts are written when
// a game ends and are never loaded back into a game.
package models

import "time"

// Transcript records one playthrough from start to finish.
type Transcript struct {
	ID        string         `yaml:"id"`
	Title     string         `yaml:"title"`
	Class     string         `yaml:"class"`
	Status    string         `yaml:"status"` // "WON", "LOST", "QUIT", or "PLAYING" if cut short
	StartedAt time.Time      `yaml:"started_at"`
	EndedAt   time.Time      `yaml:"ended_at"`
	Restarts  int            `yaml:"restarts,omitempty"`
	Player    PlayerState    `yaml:"player"`
	History   []HistoryEntry `yaml:"history"`
}

// PlayerState is the player as the playthrough left them.
type PlayerState struct {
	Level      int            `yaml:"level"`
	Health     int            `yaml:"health"`
	Attributes map[string]int `yaml:"attributes"`
	Weapons    []string       `yaml:"weapons"`
	Inventory  []string       `yaml:"inventory,omitempty"`
}

// HistoryEntry represents a single turn in the game.
type HistoryEntry struct {
	Turn         int      `yaml:"turn"`
	PlayerAction string   `yaml:"player_action"`
	Outcome      string   `yaml:"outcome"`
	Scene        string   `yaml:"scene"`
	Status       string   `yaml:"status"`
	Transition   string   `yaml:"transition,omitempty"` // e.g. "level_up", "death"
	Invalid      bool     `yaml:"invalid,omitempty"`
	Inventory    []string `yaml:"inventory,omitempty"` // inventory after the turn
}

// Turns is the number of recorded entries.
func (t *Transcript) Turns() int { return len(t.History) }
