package testdb

import (
	"context"
	"fmt"

	"github.com/carlosnayan/dbtestkit/internal/config"
	"github.com/carlosnayan/dbtestkit/internal/dialect"
)

// schemaResetter is the real destructive-setup collaborator. Failures are
// not caught here: any error aborts the calling test run.
type schemaResetter struct{}

// Reset wipes the configured test database. When the administrative
// connection's dialect supports server-level CREATE/DROP DATABASE the whole
// database is dropped and recreated through it. Otherwise every object in
// the existing schema is dropped through the main connection; no create step
// follows, the schema is rebuilt lazily by calling tests.
func (schemaResetter) Reset(ctx context.Context, main, tmp *config.ConnectionParams) error {
	tmpDialect, err := dialect.ForDriver(tmp.Driver)
	if err != nil {
		return err
	}

	mainDB, err := openParams(main)
	if err != nil {
		return err
	}

	tmpDB, err := openParams(tmp)
	if err != nil {
		mainDB.Close()
		return err
	}

	if tmpDialect.SupportsCreateDropDatabase() {
		if err := mainDB.Close(); err != nil {
			tmpDB.Close()
			return fmt.Errorf("failed to close main connection: %w", err)
		}

		if _, err := tmpDB.ExecContext(ctx, tmpDialect.DropDatabaseSQL(main.DBName)); err != nil {
			tmpDB.Close()
			return fmt.Errorf("failed to drop database %s: %w", main.DBName, err)
		}
		if _, err := tmpDB.ExecContext(ctx, tmpDialect.CreateDatabaseSQL(main.DBName)); err != nil {
			tmpDB.Close()
			return fmt.Errorf("failed to create database %s: %w", main.DBName, err)
		}

		return tmpDB.Close()
	}

	// No server-level create/drop: drop every object through the main
	// connection instead. The administrative connection has no role here.
	if err := tmpDB.Close(); err != nil {
		mainDB.Close()
		return fmt.Errorf("failed to close temporary connection: %w", err)
	}

	mainDialect, err := dialect.ForDriver(main.Driver)
	if err != nil {
		mainDB.Close()
		return err
	}

	statements, err := mainDialect.DropStatements(ctx, mainDB)
	if err != nil {
		mainDB.Close()
		return err
	}

	for _, stmt := range statements {
		if _, err := mainDB.ExecContext(ctx, stmt); err != nil {
			mainDB.Close()
			return fmt.Errorf("failed to execute %q: %w", stmt, err)
		}
	}

	return mainDB.Close()
}
