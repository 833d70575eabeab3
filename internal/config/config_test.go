package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 100, cfg.Session.HistoryLimit)
}

func TestLoadOrDefault(t *testing.T) {
	// Should match the defaults when no env vars are set.
	cfg, err := LoadOrDefault()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("CALC_LOG_LEVEL", "debug")
	t.Setenv("CALC_LOG_DEV", "true")
	t.Setenv("CALC_HISTORY_LIMIT", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
	assert.Equal(t, 5, cfg.Session.HistoryLimit)
}

func TestLoadWithPartialEnvironmentVariables(t *testing.T) {
	t.Setenv("CALC_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Logging.Level)
	// Defaults still apply to the rest.
	assert.False(t, cfg.Logging.Development)
	assert.Equal(t, 100, cfg.Session.HistoryLimit)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric limit", key: "CALC_HISTORY_LIMIT", value: "lots"},
		{name: "negative limit", key: "CALC_HISTORY_LIMIT", value: "-1"},
		{name: "non-boolean dev", key: "CALC_LOG_DEV", value: "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)

			// LoadOrDefault falls back to the defaults.
			cfg, err = LoadOrDefault()
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}
