// Package filex resolves and creates the directories the portal client keeps
// its local state in.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// userConfigDir is a seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// EnsureDir creates dir (and parents) with owner/group access only and
// returns it unchanged.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// StateDir returns <user config dir>/<app>, creating it if needed. When the
// platform has no config dir, the current working directory is used instead.
func StateDir(app string) (string, error) {
	base, err := userConfigDir()
	if err != nil || base == "" {
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
	}
	return EnsureDir(filepath.Join(base, app))
}

// StatePath joins file onto StateDir(app).
func StatePath(app, file string) (string, error) {
	dir, err := StateDir(app)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file), nil
}
