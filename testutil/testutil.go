// Package testutil holds small helpers shared by tests across packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempHome points MIRA_HOME at a fresh temporary directory so tests never
// touch the real config, state, or media locations. The directory is
// returned for tests that need to inspect what was written.
func TempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MIRA_HOME", dir)
	return dir
}

// WriteFile writes a file, creating parent directories as needed.
func WriteFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}
