package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	require.Equal(t, 5*time.Minute, cfg.KeepaliveInterval)
	require.Equal(t, 10*time.Minute, cfg.IdleThreshold)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.NotEmpty(t, cfg.TokenFile)
	require.NotEmpty(t, cfg.CacheFile)
}

func TestLoadConfig_NoSources_ReturnsDefaults(t *testing.T) {
	cfg := LoadConfig()

	want := &Config{}
	want.LoadDefaults()
	require.Equal(t, want, cfg)
}
