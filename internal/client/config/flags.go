package config

import (
	"flag"
	"os"

	"github.com/apetrov/notewise/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend
//	-t string   path to the bearer-token file
//	-d string   path to the notes cache database
//
// The function filters os.Args to just the flags it knows about, using
// flagx.FilterArgs, so it does not interfere with flags owned by other
// components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend")
	fs.StringVar(&cfg.TokenFile, "t", cfg.TokenFile, "path to the bearer-token file")
	fs.StringVar(&cfg.CacheFile, "d", cfg.CacheFile, "path to the notes cache database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
