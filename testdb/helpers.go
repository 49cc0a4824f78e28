package testdb

import (
	"testing"

	"github.com/carlosnayan/dbtestkit/internal/config"
)

// SkipIfNoDatabase skips the test when no explicit database is configured,
// for tests that cannot run against the in-memory fallback.
func SkipIfNoDatabase(t *testing.T, cfg config.Map) {
	t.Helper()
	if !cfg.Has("db_driver") {
		t.Skip("no db_driver configured, skipping test that needs a real database")
	}
}

// RequireDatabase fails the test when no explicit database is configured.
func RequireDatabase(t *testing.T, cfg config.Map) {
	t.Helper()
	if !cfg.Has("db_driver") {
		t.Fatal("no db_driver configured, test requires a real database")
	}
}
