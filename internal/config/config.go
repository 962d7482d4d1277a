// Package config loads genie-scx settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the command reads from the environment.
type Config struct {
	// LogLevel is the hclog level name.
	LogLevel string `env:"GENIE_LOG_LEVEL" envDefault:"warn"`
	// JSONLog switches log output to JSON.
	JSONLog bool `env:"GENIE_JSON_LOG"`
	// RemapTables is a YAML file of remap table overrides.
	RemapTables string `env:"GENIE_REMAP_TABLES"`
	// LangFile is the language file used to resolve string IDs.
	LangFile string `env:"GENIE_LANG_FILE"`
	// ConfigDir overrides the per-platform configuration directory.
	ConfigDir string `env:"GENIE_CONFIG_DIR"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
