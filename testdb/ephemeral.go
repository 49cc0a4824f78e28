package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/carlosnayan/dbtestkit/internal/config"
	"github.com/carlosnayan/dbtestkit/internal/dialect"
)

// Ephemeral provisions a uniquely named database for one test and returns an
// open connection to it, the database name and a cleanup function dropping
// it. Unlike Resolver, which resets THE configured test database, Ephemeral
// isolates tests that cannot share state by giving each its own database.
//
// When the configuration is in fallback mode, or the backend cannot create
// databases server-side, the ephemeral database is a temporary SQLite file.
func Ephemeral(ctx context.Context, cfg config.Map) (*sql.DB, string, func(), error) {
	main, err := config.MainParams(cfg)
	if err != nil {
		return nil, "", nil, err
	}

	if main.Fallback {
		return ephemeralFile(ctx)
	}

	tmp := config.TmpParams(cfg)
	tmpDialect, err := dialect.ForDriver(tmp.Driver)
	if err != nil {
		return nil, "", nil, err
	}
	if !tmpDialect.SupportsCreateDropDatabase() {
		return nil, "", nil, fmt.Errorf("driver %q cannot provision ephemeral databases server-side", tmp.Driver)
	}

	name := "dbtest_" + uuid.NewString()[:8]

	admin, err := openParams(tmp)
	if err != nil {
		return nil, "", nil, err
	}
	if _, err := admin.ExecContext(ctx, tmpDialect.CreateDatabaseSQL(name)); err != nil {
		admin.Close()
		return nil, "", nil, fmt.Errorf("failed to create ephemeral database %s: %w", name, err)
	}
	if err := admin.Close(); err != nil {
		return nil, "", nil, err
	}

	target := *main
	target.DBName = name
	db, err := openParams(&target)
	if err != nil {
		dropEphemeral(tmp, tmpDialect, name)
		return nil, "", nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		dropEphemeral(tmp, tmpDialect, name)
		return nil, "", nil, fmt.Errorf("failed to ping ephemeral database %s: %w", name, err)
	}

	cleanup := func() {
		db.Close()
		dropEphemeral(tmp, tmpDialect, name)
	}

	return db, name, cleanup, nil
}

// dropEphemeral drops the named database through a fresh administrative
// connection. PostgreSQL refuses to drop a database with live sessions, so
// those are terminated first. Cleanup errors are deliberately swallowed.
func dropEphemeral(tmp *config.ConnectionParams, d dialect.Dialect, name string) {
	admin, err := openParams(tmp)
	if err != nil {
		return
	}
	defer admin.Close()

	if d.Name() == "postgresql" {
		_, _ = admin.Exec(`
			SELECT pg_terminate_backend(pg_stat_activity.pid)
			FROM pg_stat_activity
			WHERE pg_stat_activity.datname = $1
			AND pid <> pg_backend_pid()
		`, name)
	}

	_, _ = admin.Exec(d.DropDatabaseSQL(name))
}

// ephemeralFile creates a temporary SQLite database file.
func ephemeralFile(ctx context.Context) (*sql.DB, string, func(), error) {
	tmpFile, err := os.CreateTemp("", "dbtest_*.db")
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpFile.Close()

	path := tmpFile.Name()
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		os.Remove(path)
		return nil, "", nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		os.Remove(path)
		return nil, "", nil, fmt.Errorf("failed to ping ephemeral database: %w", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(path)
	}

	return db, path, cleanup, nil
}
