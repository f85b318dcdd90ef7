package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/YoshitsuguKoike/habittrack/internal/app"
)

// NewTestWorkspace creates an isolated habittrack home in a temp directory
// and points HABITTRACK_HOME at it for the duration of the test.
// It returns the resolved paths of the new home.
func NewTestWorkspace(t *testing.T) app.Paths {
	t.Helper()

	home := filepath.Join(t.TempDir(), ".habittrack")
	paths := app.PathsFor(home)

	if err := os.MkdirAll(paths.Storage, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", paths.Storage, err)
	}

	t.Setenv(app.HomeEnv, home)
	return paths
}

// WriteTestSettings writes a setting.json into the workspace home
func WriteTestSettings(t *testing.T, paths app.Paths, content string) string {
	t.Helper()

	if err := os.WriteFile(paths.Setting, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test settings: %v", err)
	}

	return paths.Setting
}
