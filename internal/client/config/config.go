package config

import "time"

// Config holds runtime settings for the notewise CLI.
type Config struct {
	// APIBaseURL is scheme://host[:port] of the backend, without the
	// /api/v1 prefix.
	APIBaseURL string
	// TokenFile is where the bearer token is read from.
	TokenFile string
	// CacheFile is the sqlite database holding the local notes cache.
	CacheFile string
	// KeepaliveInterval is how often the session keepalive asks for a
	// fresh token while the user is active.
	KeepaliveInterval time.Duration
	// IdleThreshold is how long after the last interaction the session
	// stops being extended.
	IdleThreshold time.Duration
	// RequestTimeout bounds each HTTP round-trip.
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults. The keepalive knobs
// match the web client: extend every 5 minutes while the user was
// active within the last 10.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.TokenFile = "token"
	c.CacheFile = "notes.db"
	c.KeepaliveInterval = 5 * time.Minute
	c.IdleThreshold = 10 * time.Minute
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays
// values from JSON (if present) and command-line flags (if present).
// Later sources take precedence.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
