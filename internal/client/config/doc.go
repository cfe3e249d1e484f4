// Package config loads runtime configuration for the notewise CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend (without the /api/v1 prefix)
//	-t string   path to the bearer-token file
//	-d string   path to the local notes cache database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be
// either strings like "5m" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "token_file": "~/.notewise/token",
//	  "cache_file": "notes.db",
//	  "keepalive_interval": "5m",
//	  "idle_threshold": "10m",
//	  "request_timeout": "30s"
//	}
package config
