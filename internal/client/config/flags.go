package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/countryexplorer/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-d", "-t", "-r", "-s", "-b", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.CatalogBaseURL, "u", cfg.CatalogBaseURL, "country catalog base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local registry database")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "catalog request timeout (in seconds)")
	fs.Float64Var(&cfg.RequestsPerSecond, "r", cfg.RequestsPerSecond, "catalog requests per second (0 disables pacing)")
	fs.StringVar(&cfg.CredentialScheme, "s", cfg.CredentialScheme, "credential scheme: plain, argon2 or bcrypt")
	fs.StringVar(&cfg.LogBackend, "b", cfg.LogBackend, "log backend: slog or zerolog")
	fs.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format: text or json")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
