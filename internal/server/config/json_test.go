package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/legalchicks/lcen-portal/internal/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_Overlay(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_http":       "127.0.0.1:8080",
		"secret_key":               "json-secret",
		"token_validity_duration":  "48h",
		"storage_backend":          "postgres",
		"database_dsn":             "postgres://json",
		"cors_origins":             []string{"https://portal.example"},
		"read_header_timeout":      "5s",
		"shutdown_timeout":         int64(3 * time.Second),
		"log_level":                "warn",
		"seed_demo_members":        false,
		"password_hash_time":       2,
		"password_hash_memory_kib": 32768,
		"password_hash_threads":    2,
	})
	isolate(t, []string{"-config", path}, nil)

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseJson(c))

	want := &Config{
		EndpointAddrHTTP:      "127.0.0.1:8080",
		SecretKey:             "json-secret",
		TokenValidityDuration: 48 * time.Hour,
		StorageBackend:        BackendPostgres,
		DatabaseDSN:           "postgres://json",
		CORSOrigins:           []string{"https://portal.example"},
		ReadHeaderTimeout:     5 * time.Second,
		ShutdownTimeout:       3 * time.Second,
		LogLevel:              "warn",
		SeedDemoMembers:       false,
		PasswordHash:          cryptox.Params{Time: 2, MemoryKiB: 32768, Threads: 2, SaltLen: 16, KeyLen: 32},
	}
	assert.Empty(t, cmp.Diff(want, c))
}

func Test_parseJson_PartialKeepsDefaults(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"secret_key": "only-this"})
	isolate(t, []string{"-c", path}, nil)

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseJson(c))

	want := &Config{}
	want.LoadDefaults()
	want.SecretKey = "only-this"
	assert.Empty(t, cmp.Diff(want, c))
}

func Test_parseJson_EnvVarPath(t *testing.T) {
	path := writeTempJSON(t, map[string]any{"log_level": "debug"})
	isolate(t, nil, nil)
	t.Setenv("LCEN_CONFIG", path)

	c := &Config{}
	c.LoadDefaults()
	require.NoError(t, parseJson(c))
	assert.Equal(t, "debug", c.LogLevel)
}

func Test_parseJson_NoFile(t *testing.T) {
	isolate(t, nil, nil)

	c := &Config{EndpointAddrHTTP: "keep"}
	require.NoError(t, parseJson(c))
	assert.Equal(t, "keep", c.EndpointAddrHTTP)
}

func Test_parseJson_Errors(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	isolate(t, []string{"-config", bad}, nil)
	require.ErrorContains(t, parseJson(&Config{}), "parse config")

	isolate(t, []string{"-config", filepath.Join(t.TempDir(), "missing.json")}, nil)
	require.ErrorContains(t, parseJson(&Config{}), "read config")
}
