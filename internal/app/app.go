// Package app wires configuration, logging, tracing and the game director
// together for the binaries.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tatianab/caveborn/internal/config"
	"github.com/tatianab/caveborn/internal/engine"
	"github.com/tatianab/caveborn/internal/models"
	"github.com/tatianab/caveborn/internal/observability"
	"github.com/tatianab/caveborn/internal/telemetry"
)

// DefaultLogFile receives logs while the full-screen UI owns the terminal.
const DefaultLogFile = "caveborn.log"

// Options controls New.
type Options struct {
	// ConfigPath is an optional YAML config file.
	ConfigPath string
	// LogToFile sends logs to DefaultLogFile unless a file is configured.
	LogToFile bool
}

// App holds the long-lived pieces of a running game.
type App struct {
	Config   config.Config
	Logger   *zap.Logger
	Director *engine.Director

	shutdown func(context.Context) error
}

// New loads configuration and builds the logger, tracer and director.
//
// Postcondition: Returns a ready App or a non-nil error. Close must be
// called on a returned App.
func New(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.LogToFile && cfg.Logging.File == "" {
		cfg.Logging.File = DefaultLogFile
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a := &App{Config: cfg, Logger: logger}
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			// Not fatal; the game runs without traces.
			logger.Warn("telemetry setup failed", zap.Error(err))
		} else {
			a.shutdown = shutdown
		}
	}

	a.Director, err = engine.New(logger)
	if err != nil {
		logger.Error("loading game content", zap.Error(err))
		return nil, err
	}
	return a, nil
}

// NewRecorder starts a transcript for one game.
func (a *App) NewRecorder() *models.Recorder {
	return models.NewRecorder(a.Director.Title())
}

// SaveTranscript finishes rec with pt and writes it when transcripts are
// enabled. It returns the written path, or "" if nothing was written.
func (a *App) SaveTranscript(rec *models.Recorder, pt *engine.Playthrough) (string, error) {
	if !a.Config.Transcript.Enabled || pt == nil {
		return "", nil
	}
	t := rec.Finish(pt)
	path, err := t.Save(a.Config.Transcript.Dir)
	if err != nil {
		a.Logger.Error("saving transcript", zap.String("playthrough", t.ID), zap.Error(err))
		return "", err
	}
	a.Logger.Info("transcript saved",
		zap.String("playthrough", t.ID),
		zap.String("path", path),
		zap.String("status", t.Status),
		zap.Int("turns", t.Turns()),
	)
	return path, nil
}

// Close flushes logs and traces.
func (a *App) Close(ctx context.Context) {
	if a.shutdown != nil {
		if err := a.shutdown(ctx); err != nil {
			a.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
	_ = a.Logger.Sync()
}
