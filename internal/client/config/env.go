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
	EnvServerURL     = "LCEN_API_URL"
	EnvStateDSN      = "LCEN_STATE_DSN"
	EnvVerifyTimeout = "LCEN_VERIFY_TIMEOUT"
	EnvClearPrefs    = "LCEN_CLEAR_PREFS_ON_LOGOUT"
	EnvLogLevel      = "LCEN_CLIENT_LOG_LEVEL"
)

// seams for tests
var (
	lookupEnv  = os.LookupEnv
	loadDotEnv = func() error { return godotenv.Load() }
)

func parseEnv(config *Config) error {
	_ = loadDotEnv()

	if v, ok := lookupEnv(EnvServerURL); ok && v != "" {
		config.ServerBaseURL = v
	}
	if v, ok := lookupEnv(EnvStateDSN); ok && v != "" {
		config.StateDSN = v
	}
	if v, ok := lookupEnv(EnvVerifyTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerifyTimeout, err)
		}
		config.VerifyTimeout = d
	}
	if v, ok := lookupEnv(EnvClearPrefs); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvClearPrefs, err)
		}
		config.ClearPreferencesOnLogout = b
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		config.LogLevel = v
	}
	return nil
}
