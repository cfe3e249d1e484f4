package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	old := os.Args
	os.Args = append([]string{old[0]}, args...)
	t.Cleanup(func() { os.Args = old })
}

func TestParseJson_OverlaysValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "api_base_url": "https://notes.example.com",
  "keepalive_interval": "1m",
  "request_timeout": "10s"
}`), 0o600))

	withArgs(t, "-c", path)

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "https://notes.example.com", cfg.APIBaseURL)
	require.Equal(t, time.Minute, cfg.KeepaliveInterval)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	// Untouched fields keep their defaults.
	require.Equal(t, 10*time.Minute, cfg.IdleThreshold)
}

func TestParseJson_NoFileFlag_LeavesConfigAlone(t *testing.T) {
	withArgs(t)

	cfg := &Config{}
	cfg.LoadDefaults()
	want := *cfg

	parseJson(cfg)
	require.Equal(t, want, *cfg)
}

func TestParseFlags_Overrides(t *testing.T) {
	withArgs(t, "-a", "https://other.example.com", "-t", "/tmp/tok")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "https://other.example.com", cfg.APIBaseURL)
	require.Equal(t, "/tmp/tok", cfg.TokenFile)
	require.Equal(t, "notes.db", cfg.CacheFile)
}
