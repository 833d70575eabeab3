package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all calculator configuration.
type Config struct {
	Logging LogConfig
	Session SessionConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level overrides the default level of the logging mode when set.
	Level       string `envconfig:"CALC_LOG_LEVEL"`
	Development bool   `envconfig:"CALC_LOG_DEV" default:"false"`
}

// SessionConfig holds evaluation session configuration.
type SessionConfig struct {
	// HistoryLimit is the number of history entries kept. Zero keeps all.
	HistoryLimit int `envconfig:"CALC_HISTORY_LIMIT" default:"100"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Session.HistoryLimit < 0 {
		return nil, fmt.Errorf("invalid history limit %d: must not be negative", cfg.Session.HistoryLimit)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment. If that fails, it
// returns the default configuration along with the error.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Logging: LogConfig{
			Level:       "",
			Development: false,
		},
		Session: SessionConfig{
			HistoryLimit: 100,
		},
	}
}
