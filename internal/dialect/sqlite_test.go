package dialect

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// TestSQLiteDialect_DropStatements tests drop generation against a real
// in-memory schema
func TestSQLiteDialect_DropStatements(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()
	// Each pool connection to :memory: is its own database.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	schema := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY, email TEXT NOT NULL)`,
		`CREATE TABLE posts (id INTEGER PRIMARY KEY, user_id INTEGER REFERENCES users(id))`,
		`CREATE INDEX idx_posts_user ON posts(user_id)`,
		`CREATE VIEW user_posts AS SELECT u.email, p.id FROM users u JOIN posts p ON p.user_id = u.id`,
		`CREATE TRIGGER trg_users AFTER INSERT ON users BEGIN SELECT 1; END`,
	}
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("failed to create schema object: %v", err)
		}
	}

	d := &SQLiteDialect{}
	statements, err := d.DropStatements(ctx, db)
	if err != nil {
		t.Fatalf("DropStatements failed: %v", err)
	}

	want := []string{
		`DROP TRIGGER IF EXISTS "trg_users"`,
		`DROP INDEX IF EXISTS "idx_posts_user"`,
		`DROP VIEW IF EXISTS "user_posts"`,
		`DROP TABLE IF EXISTS "posts"`,
		`DROP TABLE IF EXISTS "users"`,
	}
	if len(statements) != len(want) {
		t.Fatalf("expected %d statements, got %v", len(want), statements)
	}
	for i, stmt := range want {
		if statements[i] != stmt {
			t.Errorf("statement %d = %q, want %q", i, statements[i], stmt)
		}
	}

	// The generated statements must actually empty the schema.
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("failed to execute %q: %v", stmt, err)
		}
	}

	var remaining int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE name NOT LIKE 'sqlite_%'`).Scan(&remaining)
	if err != nil {
		t.Fatalf("failed to count remaining objects: %v", err)
	}
	if remaining != 0 {
		t.Errorf("expected empty schema, %d objects remain", remaining)
	}
}

// TestSQLiteDialect_DropStatementsEmptySchema tests the empty-schema case
func TestSQLiteDialect_DropStatementsEmptySchema(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	d := &SQLiteDialect{}
	statements, err := d.DropStatements(context.Background(), db)
	if err != nil {
		t.Fatalf("DropStatements failed: %v", err)
	}
	if len(statements) != 0 {
		t.Errorf("expected no statements, got %v", statements)
	}

	for _, stmt := range statements {
		if !strings.HasPrefix(stmt, "DROP") {
			t.Errorf("unexpected statement %q", stmt)
		}
	}
}
