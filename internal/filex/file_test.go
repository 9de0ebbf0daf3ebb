package filex

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func withConfigDir(t *testing.T, fn func() (string, error)) {
	t.Helper()
	orig := userConfigDir
	userConfigDir = fn
	t.Cleanup(func() { userConfigDir = orig })
}

func TestEnsureDir_CreatesNested(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	got, err := EnsureDir(dir)
	require.NoError(t, err)
	require.Equal(t, dir, got)

	fi, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	// second call is a no-op
	_, err = EnsureDir(dir)
	require.NoError(t, err)
}

func TestEnsureDir_FailsWhenFileInTheWay(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureDir(filepath.Join(blocker, "sub"))
	require.Error(t, err)
}

func TestStatePath_UsesUserConfigDir(t *testing.T) {
	base := t.TempDir()
	withConfigDir(t, func() (string, error) { return base, nil })

	got, err := StatePath("lcen", "portal.db")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(base, "lcen", "portal.db"), got)

	fi, err := os.Stat(filepath.Join(base, "lcen"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())
}

func TestStateDir_FallsBackToWorkingDir(t *testing.T) {
	tmp := t.TempDir()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(old) })

	withConfigDir(t, func() (string, error) { return "", errors.New("no home") })

	got, err := StateDir("lcen")
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(filepath.Join(tmp, "lcen"))
	require.NoError(t, err)
	gotResolved, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	require.Equal(t, want, gotResolved)
}
