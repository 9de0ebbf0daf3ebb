package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds runtime settings for the portal client.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the API server.
//   - StateDSN: SQLite DSN of the local state; empty means the default
//     file under the user config directory.
//   - RequestTimeout: bound on each API call.
//   - VerifyTimeout: bound on the startup token verification.
//   - ClearPreferencesOnLogout: logout also drops settings and notifications.
type Config struct {
	ServerBaseURL            string
	StateDSN                 string
	RequestTimeout           time.Duration
	VerifyTimeout            time.Duration
	ClearPreferencesOnLogout bool
	LogLevel                 string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:3001"
	c.StateDSN = ""
	c.RequestTimeout = 15 * time.Second
	c.VerifyTimeout = 10 * time.Second
	c.ClearPreferencesOnLogout = false
	c.LogLevel = "warn"
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server base url %q must be an http(s) URL", c.ServerBaseURL)
	}
	if c.RequestTimeout <= 0 || c.VerifyTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and flags, in that order, and validates it.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
