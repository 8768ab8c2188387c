// Package config provides Viper-based configuration loading for the game.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, sends logs to a rotating file instead of stderr.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// TranscriptConfig controls the YAML record written when a game ends.
type TranscriptConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

// GeminiConfig holds the credentials for the self-play harness.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// TelemetryConfig controls OpenTelemetry tracing.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ServiceName string `mapstructure:"service_name"`
}

// SimulateConfig bounds a self-play run.
type SimulateConfig struct {
	MaxTurns int `mapstructure:"max_turns"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Transcript TranscriptConfig `mapstructure:"transcript"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
	Simulate   SimulateConfig   `mapstructure:"simulate"`
}

// ErrNoGeminiKey is returned by RequireGemini when no API key is set.
var ErrNoGeminiKey = errors.New("GEMINI_API_KEY environment variable is not set")

// RequireGemini reports whether the Gemini settings are usable.
func (c Config) RequireGemini() error {
	if c.Gemini.APIKey == "" {
		return ErrNoGeminiKey
	}
	return nil
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Transcript.Enabled && c.Transcript.Dir == "" {
		errs = append(errs, "transcript.dir must not be empty when transcripts are enabled")
	}
	if c.Gemini.Model == "" {
		errs = append(errs, "gemini.model must not be empty")
	}
	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		errs = append(errs, "telemetry.service_name must not be empty when telemetry is enabled")
	}
	if c.Simulate.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("simulate.max_turns must be >= 1, got %d", c.Simulate.MaxTurns))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	var errs []string
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", l.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", l.Format))
	}
	if l.File != "" {
		if l.MaxSizeMB < 1 {
			errs = append(errs, fmt.Sprintf("logging.max_size_mb must be >= 1, got %d", l.MaxSizeMB))
		}
		if l.MaxBackups < 0 {
			errs = append(errs, "logging.max_backups must not be negative")
		}
		if l.MaxAgeDays < 0 {
			errs = append(errs, "logging.max_age_days must not be negative")
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment
// variable overrides, and validates the result. An empty path uses defaults
// and the environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with CAVEBORN_ prefix
	v.SetEnvPrefix("CAVEBORN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("gemini.api_key", "CAVEBORN_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return Config{}, fmt.Errorf("binding gemini key: %w", err)
	}

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age_days", 28)

	v.SetDefault("transcript.enabled", true)
	v.SetDefault("transcript.dir", ".transcripts")

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.5-flash")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "caveborn")

	v.SetDefault("simulate.max_turns", 60)
}
