package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/carlosnayan/dbtestkit/internal/config"
)

// MySQLDialect implements the MySQL/MariaDB dialect
type MySQLDialect struct{}

func (d *MySQLDialect) Name() string {
	return "mysql"
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

// DSN builds the data source name through the driver's own config type so
// escaping and defaults stay consistent with go-sql-driver.
func (d *MySQLDialect) DSN(p *config.ConnectionParams) string {
	cfg := mysql.NewConfig()
	cfg.User = p.User
	cfg.Passwd = p.Password
	cfg.DBName = p.DBName

	if p.UnixSocket != "" {
		cfg.Net = "unix"
		cfg.Addr = p.UnixSocket
	} else {
		cfg.Net = "tcp"
		addr := p.Host
		if addr == "" {
			addr = "127.0.0.1"
		}
		if p.Port != "" {
			addr += ":" + p.Port
		}
		cfg.Addr = addr
	}

	if len(p.DriverOptions) > 0 {
		cfg.Params = make(map[string]string, len(p.DriverOptions))
		for name, value := range p.DriverOptions {
			cfg.Params[name] = value
		}
	}

	return cfg.FormatDSN()
}

func (d *MySQLDialect) QuoteIdentifier(name string) string {
	return fmt.Sprintf("`%s`", strings.ReplaceAll(name, "`", "``"))
}

func (d *MySQLDialect) SupportsCreateDropDatabase() bool {
	return true
}

func (d *MySQLDialect) CreateDatabaseSQL(name string) string {
	return "CREATE DATABASE " + d.QuoteIdentifier(name)
}

func (d *MySQLDialect) DropDatabaseSQL(name string) string {
	return "DROP DATABASE IF EXISTS " + d.QuoteIdentifier(name)
}

// DropStatements lists views and base tables in the current database and
// generates their drop statements. Foreign key checks are toggled off around
// the table drops so ordering does not matter.
func (d *MySQLDialect) DropStatements(ctx context.Context, db *sql.DB) ([]string, error) {
	views, err := queryStrings(ctx, db, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		AND table_type = 'VIEW'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}

	tables, err := queryStrings(ctx, db, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}

	if len(views) == 0 && len(tables) == 0 {
		return nil, nil
	}

	statements := []string{"SET FOREIGN_KEY_CHECKS = 0"}
	for _, view := range views {
		statements = append(statements, "DROP VIEW IF EXISTS "+d.QuoteIdentifier(view))
	}
	for _, table := range tables {
		statements = append(statements, "DROP TABLE IF EXISTS "+d.QuoteIdentifier(table))
	}
	statements = append(statements, "SET FOREIGN_KEY_CHECKS = 1")

	return statements, nil
}
