package config

import (
	"flag"
	"io"
	"os"
	"strings"

	"github.com/legalchicks/lcen-portal/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g., ":3001")
//	-s string     token signing secret
//	-t duration   token validity (e.g., "168h")
//	-b string     storage backend: memory | postgres
//	-d string     PostgreSQL DSN
//	-o string     comma-separated CORS origins
//	-l string     log level
func parseFlags(config *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t", "-b", "-d", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.TokenValidityDuration, "t", config.TokenValidityDuration, "token validity")
	fs.StringVar(&config.StorageBackend, "b", config.StorageBackend, "storage backend (memory|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	origins := fs.String("o", strings.Join(config.CORSOrigins, ","), "allowed CORS origins, comma-separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.CORSOrigins = splitList(*origins)
	return nil
}
