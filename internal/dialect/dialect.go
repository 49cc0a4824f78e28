package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/carlosnayan/dbtestkit/internal/config"
	kiterrors "github.com/carlosnayan/dbtestkit/internal/errors"
)

// Dialect abstracts the differences between the supported backends
// (PostgreSQL, MySQL, SQLite) for connection setup and test-database resets.
type Dialect interface {
	// Name returns the dialect name ("postgresql", "mysql", "sqlite")
	Name() string

	// DriverName returns the database/sql registration name
	// PostgreSQL: "pgx", MySQL: "mysql", SQLite: "sqlite3"
	DriverName() string

	// DSN builds the driver-specific data source name from resolved params
	DSN(p *config.ConnectionParams) string

	// QuoteIdentifier quotes a table or database identifier
	QuoteIdentifier(name string) string

	// SupportsCreateDropDatabase reports whether the server can atomically
	// drop and recreate a whole database from an administrative connection
	SupportsCreateDropDatabase() bool

	// CreateDatabaseSQL returns the statement creating the named database
	CreateDatabaseSQL(name string) string

	// DropDatabaseSQL returns the statement dropping the named database if
	// it exists
	DropDatabaseSQL(name string) string

	// DropStatements introspects the connected schema and returns the drop
	// statements for every object in it, in a safe execution order. It does
	// not execute them.
	DropStatements(ctx context.Context, db *sql.DB) ([]string, error)
}

// ForDriver resolves a configured driver name to its dialect. Aliases are
// accepted the way callers commonly spell them.
func ForDriver(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "pgx", "postgres", "postgresql":
		return &PostgreSQLDialect{}, nil
	case "mysql", "mariadb":
		return &MySQLDialect{}, nil
	case "sqlite", "sqlite3":
		return &SQLiteDialect{}, nil
	default:
		return nil, kiterrors.WrapWithMessage(kiterrors.ErrUnknownDriver,
			fmt.Sprintf("unknown database driver %q", driver), nil)
	}
}
