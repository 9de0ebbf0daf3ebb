package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/legalchicks/lcen-portal/internal/flagx"
	"github.com/legalchicks/lcen-portal/internal/timex"
)

// JsonConfig is the on-disk form of Config. Absent fields keep their value.
type JsonConfig struct {
	ServerBaseURL            string          `json:"server_base_url"`
	StateDSN                 string          `json:"state_dsn"`
	RequestTimeout           *timex.Duration `json:"request_timeout"`
	VerifyTimeout            *timex.Duration `json:"verify_timeout"`
	ClearPreferencesOnLogout *bool           `json:"clear_preferences_on_logout"`
	LogLevel                 string          `json:"log_level"`
}

func parseJson(config *Config) error {
	path := flagx.ConfigPath()
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.ServerBaseURL != "" {
		config.ServerBaseURL = c.ServerBaseURL
	}
	if c.StateDSN != "" {
		config.StateDSN = c.StateDSN
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	if c.RequestTimeout != nil {
		config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
	}
	if c.VerifyTimeout != nil {
		config.VerifyTimeout = time.Duration(c.VerifyTimeout.Duration)
	}
	if c.ClearPreferencesOnLogout != nil {
		config.ClearPreferencesOnLogout = *c.ClearPreferencesOnLogout
	}
	return nil
}
