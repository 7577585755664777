package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// GoalConfigVersion is written into every saved goal optimizer document.
const GoalConfigVersion = 1

// GoalFileName is the document name inside the optimizer install directory.
const GoalFileName = "config.toml"

// GoalConfig is the goal optimizer document. Mutable at runtime through
// Optimizer.Reconfigure; PhaseCount never drops below 1.
type GoalConfig struct {
	Version    int  `toml:"version"`
	Enabled    bool `toml:"enabled"`
	Debug      bool `toml:"debug"`
	PhaseCount int  `toml:"phase_count"`
}

// DefaultGoalConfig returns the values seeded on first load.
func DefaultGoalConfig() GoalConfig {
	return GoalConfig{
		Version:    GoalConfigVersion,
		Enabled:    true,
		Debug:      false,
		PhaseCount: 4,
	}
}

// Clamp returns cfg with PhaseCount raised to at least 1.
func (c GoalConfig) Clamp() GoalConfig {
	if c.PhaseCount < 1 {
		c.PhaseCount = 1
	}
	return c
}

// LoadGoal reads the goal document at path. On a missing or unparseable file
// it returns the defaults together with the error so the caller can seed them.
func LoadGoal(path string) (GoalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultGoalConfig(), fmt.Errorf("read goal config %s: %w", path, err)
	}
	cfg := DefaultGoalConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return DefaultGoalConfig(), fmt.Errorf("parse goal config %s: %w", path, err)
	}
	return cfg.Clamp(), nil
}

// SaveGoal writes cfg to path, replacing any existing document.
func SaveGoal(path string, cfg GoalConfig) error {
	cfg = cfg.Clamp()
	if cfg.Version == 0 {
		cfg.Version = GoalConfigVersion
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encode goal config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write goal config %s: %w", path, err)
	}
	return nil
}
