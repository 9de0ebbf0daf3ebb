// Package config loads runtime configuration for the portal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c/-config or $LCEN_CONFIG.
//  3. Environment variables, after loading .env when present.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string     base URL of the portal API
//	-d string     state database DSN (":memory:" keeps nothing on disk)
//	-t duration   per-request timeout
//	-v duration   startup session verification timeout
//	-x            clear settings and notifications on logout
//	-l string     log level
//
// # JSON schema
//
//	{
//	  "server_base_url": "http://localhost:3001",
//	  "state_dsn": "/home/me/.config/lcen-portal/state.db",
//	  "request_timeout": "15s",
//	  "verify_timeout": "10s",
//	  "clear_preferences_on_logout": false,
//	  "log_level": "warn"
//	}
package config
