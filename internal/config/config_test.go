package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.FastModel)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, "memory", cfg.CacheBackend)
	assert.Equal(t, "unified", cfg.Pipeline)
	assert.InDelta(t, 0.2, cfg.Temperature, 1e-6)
	assert.Equal(t, 25*time.Second, cfg.GenerateTimeout)
	assert.Equal(t, 2, cfg.MaxRetries)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PIPELINE", "staged")
	t.Setenv("CACHE_TTL_SECONDS", "120")
	t.Setenv("PRO_MODEL", "gemini-2.5-pro")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "staged", cfg.Pipeline)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "gemini-2.5-pro", cfg.ProModel)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad cache backend", "CACHE_BACKEND", "disk"},
		{"bad pipeline", "PIPELINE", "parallel"},
		{"zero ttl", "CACHE_TTL_SECONDS", "0"},
		{"negative retries", "MAX_RETRIES", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
