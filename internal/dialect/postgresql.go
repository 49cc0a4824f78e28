package dialect

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/carlosnayan/dbtestkit/internal/config"
)

// PostgreSQLDialect implements the PostgreSQL dialect (pgx stdlib driver)
type PostgreSQLDialect struct{}

func (d *PostgreSQLDialect) Name() string {
	return "postgresql"
}

func (d *PostgreSQLDialect) DriverName() string {
	return "pgx"
}

// DSN builds a keyword/value connection string understood by pgx.
// A configured unix socket takes the place of the host.
func (d *PostgreSQLDialect) DSN(p *config.ConnectionParams) string {
	kv := make([]string, 0, 8)

	add := func(key, value string) {
		if value != "" {
			kv = append(kv, key+"="+escapeKVValue(value))
		}
	}

	host := p.Host
	if p.UnixSocket != "" {
		host = p.UnixSocket
	}
	add("host", host)
	add("port", p.Port)
	add("user", p.User)
	add("password", p.Password)
	add("dbname", p.DBName)
	add("sslkey", p.SSLKey)
	add("sslcert", p.SSLCert)
	add("sslrootcert", p.SSLCA)

	// Driver options pass through as raw keyword/value pairs, sorted so the
	// DSN is deterministic.
	names := make([]string, 0, len(p.DriverOptions))
	for name := range p.DriverOptions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		add(name, p.DriverOptions[name])
	}

	return strings.Join(kv, " ")
}

func (d *PostgreSQLDialect) QuoteIdentifier(name string) string {
	return fmt.Sprintf(`"%s"`, strings.ReplaceAll(name, `"`, `""`))
}

func (d *PostgreSQLDialect) SupportsCreateDropDatabase() bool {
	return true
}

func (d *PostgreSQLDialect) CreateDatabaseSQL(name string) string {
	return "CREATE DATABASE " + d.QuoteIdentifier(name)
}

func (d *PostgreSQLDialect) DropDatabaseSQL(name string) string {
	return "DROP DATABASE IF EXISTS " + d.QuoteIdentifier(name)
}

// DropStatements lists views, tables and sequences in the public schema and
// generates their drop statements. CASCADE on tables covers dependent
// constraints and indexes.
func (d *PostgreSQLDialect) DropStatements(ctx context.Context, db *sql.DB) ([]string, error) {
	var statements []string

	views, err := queryStrings(ctx, db, `
		SELECT table_name
		FROM information_schema.views
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list views: %w", err)
	}
	for _, view := range views {
		statements = append(statements, "DROP VIEW IF EXISTS "+d.QuoteIdentifier(view)+" CASCADE")
	}

	tables, err := queryStrings(ctx, db, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	for _, table := range tables {
		statements = append(statements, "DROP TABLE IF EXISTS "+d.QuoteIdentifier(table)+" CASCADE")
	}

	sequences, err := queryStrings(ctx, db, `
		SELECT sequence_name
		FROM information_schema.sequences
		WHERE sequence_schema = 'public'
		ORDER BY sequence_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sequences: %w", err)
	}
	for _, seq := range sequences {
		statements = append(statements, "DROP SEQUENCE IF EXISTS "+d.QuoteIdentifier(seq)+" CASCADE")
	}

	return statements, nil
}

// escapeKVValue quotes a keyword/value DSN value when it contains spaces or
// quotes.
func escapeKVValue(value string) string {
	if !strings.ContainsAny(value, " '\\") {
		return value
	}
	escaped := strings.ReplaceAll(value, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `'`, `\'`)
	return "'" + escaped + "'"
}
