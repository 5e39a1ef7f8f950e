// Package config loads operator-facing bot configuration from disk.
package config

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"settlers/internal/bot"
)

// BotSettings is the operator-tunable file format: pacing for hosted
// matches plus the full heuristic tuning tree.
type BotSettings struct {
	MinDelaySeconds      int        `yaml:"min_delay_seconds"`
	MaxDelaySeconds      int        `yaml:"max_delay_seconds"`
	AutoFillDelaySeconds int        `yaml:"auto_fill_delay_seconds"`
	Tuning               bot.Tuning `yaml:"tuning"`
}

var (
	settings *BotSettings
	loadOnce sync.Once
	loadErr  error
)

// LoadBotSettings loads the bot settings file once per process.
func LoadBotSettings(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot settings: %w", err)
			return
		}

		s := BotSettings{Tuning: bot.DefaultTuning}
		if err := yaml.Unmarshal(data, &s); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot settings: %w", err)
			return
		}
		settings = &s
	})
	return loadErr
}

// GetBotSettings returns the loaded settings, or nil before a load.
func GetBotSettings() *BotSettings {
	return settings
}

// TuningOrDefault returns the loaded tuning, falling back to the built-in
// defaults when no file was loaded.
func TuningOrDefault() bot.Tuning {
	if settings == nil {
		return bot.DefaultTuning
	}
	return settings.Tuning
}

// LoadTuningFile parses a standalone tuning file without touching the
// process-wide settings. Used by analysis tooling.
func LoadTuningFile(path string) (bot.Tuning, error) {
	tuning := bot.DefaultTuning
	data, err := os.ReadFile(path)
	if err != nil {
		return tuning, fmt.Errorf("failed to read tuning file: %w", err)
	}
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return tuning, fmt.Errorf("failed to unmarshal tuning file: %w", err)
	}
	return tuning, nil
}
