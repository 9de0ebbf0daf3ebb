package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvAddr          = "LCEN_ADDR"
	EnvSecret        = "JWT_SECRET"
	EnvTokenValidity = "LCEN_TOKEN_VALIDITY"
	EnvStorage       = "LCEN_STORAGE"
	EnvDatabaseURL   = "DATABASE_URL"
	EnvCORSOrigin    = "CORS_ORIGIN"
	EnvLogLevel      = "LCEN_LOG_LEVEL"
	EnvSeed          = "LCEN_SEED_DEMO"
)

// seams for tests
var (
	lookupEnv  = os.LookupEnv
	loadDotEnv = func() error { return godotenv.Load() }
)

// parseEnv loads .env when present and overlays set variables.
func parseEnv(config *Config) error {
	// a missing .env is normal outside development
	_ = loadDotEnv()

	if v, ok := lookupEnv(EnvAddr); ok && v != "" {
		config.EndpointAddrHTTP = v
	}
	if v, ok := lookupEnv(EnvSecret); ok && v != "" {
		config.SecretKey = v
	}
	if v, ok := lookupEnv(EnvTokenValidity); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTokenValidity, err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := lookupEnv(EnvStorage); ok && v != "" {
		config.StorageBackend = v
	}
	if v, ok := lookupEnv(EnvDatabaseURL); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := lookupEnv(EnvCORSOrigin); ok && v != "" {
		config.CORSOrigins = splitList(v)
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
	if v, ok := lookupEnv(EnvSeed); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		config.SeedDemoMembers = b
	}
	return nil
}
