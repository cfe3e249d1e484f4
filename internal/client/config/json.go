package config

import (
	"encoding/json"
	"os"

	"github.com/apetrov/notewise/internal/flagx"
	"github.com/apetrov/notewise/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Interval
// fields use timex.Duration so JSON can specify them either as strings
// like "5m" or as integer nanoseconds. Zero values mean "not set" and
// leave the existing Config value alone.
type JsonConfig struct {
	APIBaseURL        string         `json:"api_base_url"`
	TokenFile         string         `json:"token_file"`
	CacheFile         string         `json:"cache_file"`
	KeepaliveInterval timex.Duration `json:"keepalive_interval"`
	IdleThreshold     timex.Duration `json:"idle_threshold"`
	RequestTimeout    timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with values from the JSON file selected via
// the -c/-config flags. No file flag means no JSON pass. Read and
// unmarshal errors panic; config loading happens before anything else
// runs and a broken config file should stop the program.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.TokenFile != "" {
		cfg.TokenFile = jc.TokenFile
	}
	if jc.CacheFile != "" {
		cfg.CacheFile = jc.CacheFile
	}
	if jc.KeepaliveInterval.Duration != 0 {
		cfg.KeepaliveInterval = jc.KeepaliveInterval.Duration
	}
	if jc.IdleThreshold.Duration != 0 {
		cfg.IdleThreshold = jc.IdleThreshold.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
