package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

// setupTestDir creates a temporary directory for testing and changes to it
func setupTestDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current dir: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change to temp dir: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldDir)
	})

	return dir
}

// createTestConfig writes a dbtest.conf into the test directory
func createTestConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, "dbtest.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

// resetGlobalFlags clears flag state shared between command tests
func resetGlobalFlags() {
	configFile = ""
	verbose = false
	checkWatch = false
	resetTimeout = 0
}
