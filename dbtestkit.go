// Package dbtestkit provides test-database provisioning and connection
// configuration resolution for Go database tests.
//
// dbtestkit includes:
//   - Connection parameter resolution from TOML config and environment
//   - Automatic fallback to an in-memory SQLite database
//   - One-time destructive reset of the configured test database
//   - Ephemeral per-test database provisioning with cleanup
//   - A subscriber registry for connection lifecycle events
//
// Example usage:
//
//	import "github.com/carlosnayan/dbtestkit/testdb"
//
//	// Create one resolver per test session
//	resolver := testdb.NewResolver(cfg)
//
//	// Acquire a fresh connection to the (reset) test database
//	conn, err := resolver.Connection(ctx)
//	defer conn.Close()
//
// CLI Commands:
//
//	dbtest resolve              # Print resolved connection parameters
//	dbtest reset                # Force a destructive reset of the test database
//	dbtest check                # Resolve, connect and ping the test database
//
// For more examples and documentation, visit:
// https://github.com/carlosnayan/dbtestkit
package dbtestkit

const Version = "0.1.0"
