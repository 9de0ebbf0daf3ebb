package config

import (
	"flag"
	"io"
	"os"

	"github.com/legalchicks/lcen-portal/internal/flagx"
)

// parseFlags overlays command-line flags; see the package doc for the list.
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-v", "-x", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ServerBaseURL, "a", config.ServerBaseURL, "base URL of the portal API")
	fs.StringVar(&config.StateDSN, "d", config.StateDSN, "state database DSN")
	fs.DurationVar(&config.RequestTimeout, "t", config.RequestTimeout, "request timeout")
	fs.DurationVar(&config.VerifyTimeout, "v", config.VerifyTimeout, "session verification timeout")
	fs.BoolVar(&config.ClearPreferencesOnLogout, "x", config.ClearPreferencesOnLogout, "clear settings and notifications on logout")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	return fs.Parse(args)
}
