// Package config loads, validates and watches the user's chat settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wellszhang/mcschat/internal/engine"
)

// Config holds the user's persistent chat preferences.
type Config struct {
	LLMProvider string `json:"llm_provider,omitempty"` // openai, anthropic, kimi, etc.
	Model       string `json:"model,omitempty"`
	BaseURL     string `json:"base_url,omitempty"`

	// Thinking simulation knobs. Zero values fall back to engine defaults.
	ThinkingEnabled    bool `json:"thinking_enabled"`
	CharDelayMinMs     int  `json:"char_delay_min_ms,omitempty"`
	CharDelayMaxMs     int  `json:"char_delay_max_ms,omitempty"`
	InitialGapMs       int  `json:"initial_gap_ms,omitempty"`
	ContinuousGapMinMs int  `json:"continuous_gap_min_ms,omitempty"`
	ContinuousGapMaxMs int  `json:"continuous_gap_max_ms,omitempty"`
	MaxThoughtRunes    int  `json:"max_thought_runes,omitempty"`

	// How many recent exchanges feed contextual thought prompts.
	HistoryTurns int `json:"history_turns,omitempty"`
}

// DefaultConfig returns the settings used when no file exists yet.
func DefaultConfig() *Config {
	return &Config{
		ThinkingEnabled: true,
		HistoryTurns:    3,
	}
}

// EngineOptions converts the pacing knobs into engine options, leaving
// untouched fields to the engine's defaults.
func (c *Config) EngineOptions() engine.Options {
	opts := engine.DefaultOptions()
	if c.CharDelayMinMs > 0 {
		opts.CharDelayMin = time.Duration(c.CharDelayMinMs) * time.Millisecond
	}
	if c.CharDelayMaxMs > 0 {
		opts.CharDelayMax = time.Duration(c.CharDelayMaxMs) * time.Millisecond
	}
	if c.InitialGapMs > 0 {
		opts.InitialGap = time.Duration(c.InitialGapMs) * time.Millisecond
	}
	if c.ContinuousGapMinMs > 0 {
		opts.ContinuousGapMin = time.Duration(c.ContinuousGapMinMs) * time.Millisecond
	}
	if c.ContinuousGapMaxMs > 0 {
		opts.ContinuousGapMax = time.Duration(c.ContinuousGapMaxMs) * time.Millisecond
	}
	if c.MaxThoughtRunes > 0 {
		opts.MaxThoughtRunes = c.MaxThoughtRunes
	}
	return opts
}

// Manager handles loading and saving the configuration.
type Manager struct {
	configDir string
}

// NewManager creates a manager rooted at the platform's user config dir.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}
	return &Manager{configDir: filepath.Join(configDir, "mcschat")}, nil
}

// NewManagerAt creates a manager rooted at an explicit directory.
func NewManagerAt(dir string) *Manager {
	return &Manager{configDir: dir}
}

// GetConfigPath returns the absolute path to the config.json file.
func (m *Manager) GetConfigPath() string {
	return filepath.Join(m.configDir, "config.json")
}

// Load reads and validates the configuration. A missing file yields the
// defaults and no error.
func (m *Manager) Load() (*Config, error) {
	path := m.GetConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("invalid config at %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config json: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration with owner-only permissions.
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.GetConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists checks if the configuration file has been created.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.GetConfigPath())
	return !os.IsNotExist(err)
}
