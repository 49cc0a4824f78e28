package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/carlosnayan/dbtestkit/internal/config"
)

// SQLiteDialect implements the SQLite dialect (embedded fallback database)
type SQLiteDialect struct{}

func (d *SQLiteDialect) Name() string {
	return "sqlite"
}

func (d *SQLiteDialect) DriverName() string {
	return "sqlite3"
}

// DSN builds a file URI. The in-memory fallback uses a uniquely named
// shared-cache database: database/sql opens several underlying connections
// per handle, and a plain :memory: DSN would give each of them a private,
// empty database. The unique name keeps separate acquisitions isolated
// while every pooled connection of one handle sees the same schema.
// A configured path takes precedence and is file-backed; for specified
// parameters the database name is the file path, since SQLite has no
// server-side database names.
func (d *SQLiteDialect) DSN(p *config.ConnectionParams) string {
	var base string
	switch {
	case p.Path != "":
		base = "file:" + p.Path
	case p.DBName != "":
		base = "file:" + p.DBName
	default:
		base = "file:dbtest_" + uuid.NewString()[:8] + "?mode=memory&cache=shared"
	}

	if len(p.DriverOptions) > 0 {
		values := url.Values{}
		for name, value := range p.DriverOptions {
			values.Set(name, value)
		}
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
		}
		// url.Values.Encode sorts keys, keeping the DSN deterministic.
		base += sep + values.Encode()
	}

	return base
}

func (d *SQLiteDialect) QuoteIdentifier(name string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(name, `"`, `""`))
}

// SupportsCreateDropDatabase is false: a SQLite database is a file, there is
// no server-level CREATE/DROP DATABASE. Resets happen object by object.
func (d *SQLiteDialect) SupportsCreateDropDatabase() bool {
	return false
}

func (d *SQLiteDialect) CreateDatabaseSQL(name string) string {
	return ""
}

func (d *SQLiteDialect) DropDatabaseSQL(name string) string {
	return ""
}

// DropStatements reads sqlite_master and generates drops for triggers,
// indexes, views and tables, in that order. Internal sqlite_* objects and
// auto-created indexes are skipped because SQLite refuses to drop them.
func (d *SQLiteDialect) DropStatements(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT type, name
		FROM sqlite_master
		WHERE name NOT LIKE 'sqlite_%'
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to read sqlite_master: %w", err)
	}
	defer rows.Close()

	objects := map[string][]string{}
	for rows.Next() {
		var objType, name string
		if err := rows.Scan(&objType, &name); err != nil {
			return nil, fmt.Errorf("failed to scan schema object: %w", err)
		}
		objects[objType] = append(objects[objType], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate schema objects: %w", err)
	}

	var statements []string
	for _, group := range []struct {
		objType string
		keyword string
	}{
		{"trigger", "TRIGGER"},
		{"index", "INDEX"},
		{"view", "VIEW"},
		{"table", "TABLE"},
	} {
		names := objects[group.objType]
		sort.Strings(names)
		for _, name := range names {
			statements = append(statements,
				fmt.Sprintf("DROP %s IF EXISTS %s", group.keyword, d.QuoteIdentifier(name)))
		}
	}

	return statements, nil
}
