package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/legalchicks/lcen-portal/internal/flagx"
	"github.com/legalchicks/lcen-portal/internal/timex"
)

// JsonConfig is the on-disk form of Config. Durations accept "10s" style
// strings or integer nanoseconds. Absent fields keep their current value.
type JsonConfig struct {
	EndpointAddrHTTP      string          `json:"endpoint_addr_http"`
	SecretKey             string          `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	StorageBackend        string          `json:"storage_backend"`
	DatabaseDSN           string          `json:"database_dsn"`
	CORSOrigins           []string        `json:"cors_origins"`
	ReadHeaderTimeout     *timex.Duration `json:"read_header_timeout"`
	ShutdownTimeout       *timex.Duration `json:"shutdown_timeout"`
	LogLevel              string          `json:"log_level"`
	SeedDemoMembers       *bool           `json:"seed_demo_members"`
	HashTime              *uint32         `json:"password_hash_time"`
	HashMemoryKiB         *uint32         `json:"password_hash_memory_kib"`
	HashThreads           *uint8          `json:"password_hash_threads"`
}

// parseJson overlays values from the file named by -c/-config (or
// $LCEN_CONFIG). With no file nothing changes.
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

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.LogLevel, c.LogLevel)
	setDuration(&config.TokenValidityDuration, c.TokenValidityDuration)
	setDuration(&config.ReadHeaderTimeout, c.ReadHeaderTimeout)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
	if len(c.CORSOrigins) > 0 {
		config.CORSOrigins = c.CORSOrigins
	}
	if c.SeedDemoMembers != nil {
		config.SeedDemoMembers = *c.SeedDemoMembers
	}
	if c.HashTime != nil {
		config.PasswordHash.Time = *c.HashTime
	}
	if c.HashMemoryKiB != nil {
		config.PasswordHash.MemoryKiB = *c.HashMemoryKiB
	}
	if c.HashThreads != nil {
		config.PasswordHash.Threads = *c.HashThreads
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = time.Duration(v.Duration)
	}
}
