package dialect

import (
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"

	"github.com/carlosnayan/dbtestkit/internal/config"
	kiterrors "github.com/carlosnayan/dbtestkit/internal/errors"
)

// TestForDriver tests driver name alias resolution
func TestForDriver(t *testing.T) {
	tests := []struct {
		driver string
		want   string
	}{
		{"pgx", "postgresql"},
		{"postgres", "postgresql"},
		{"postgresql", "postgresql"},
		{"mysql", "mysql"},
		{"mariadb", "mysql"},
		{"sqlite", "sqlite"},
		{"sqlite3", "sqlite"},
		{"SQLite3", "sqlite"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			d, err := ForDriver(tt.driver)
			if err != nil {
				t.Fatalf("ForDriver(%q) failed: %v", tt.driver, err)
			}
			if d.Name() != tt.want {
				t.Errorf("ForDriver(%q).Name() = %q, want %q", tt.driver, d.Name(), tt.want)
			}
		})
	}
}

// TestForDriver_Unknown tests the error for an unresolvable driver name
func TestForDriver_Unknown(t *testing.T) {
	_, err := ForDriver("oracle")
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if !kiterrors.IsUnknownDriver(err) {
		t.Errorf("expected unknown-driver error, got %v", err)
	}
	if !strings.Contains(err.Error(), "oracle") {
		t.Errorf("error should name the driver: %v", err)
	}
}

// TestPostgreSQLDialect_DSN tests keyword/value DSN building
func TestPostgreSQLDialect_DSN(t *testing.T) {
	d := &PostgreSQLDialect{}

	p := &config.ConnectionParams{
		Driver:   "pgx",
		User:     "alice",
		Password: "secret",
		Host:     "db.example.com",
		Port:     "5433",
		DBName:   "app_test",
	}

	dsn := d.DSN(p)

	for _, want := range []string{
		"host=db.example.com",
		"port=5433",
		"user=alice",
		"password=secret",
		"dbname=app_test",
	} {
		if !strings.Contains(dsn, want) {
			t.Errorf("DSN %q missing %q", dsn, want)
		}
	}
}

func TestPostgreSQLDialect_DSNOmitsUnsetKeys(t *testing.T) {
	d := &PostgreSQLDialect{}

	dsn := d.DSN(&config.ConnectionParams{Driver: "pgx", Host: "localhost"})

	if strings.Contains(dsn, "dbname=") || strings.Contains(dsn, "password=") {
		t.Errorf("DSN must not carry unset keys: %q", dsn)
	}
}

func TestPostgreSQLDialect_DSNUnixSocket(t *testing.T) {
	d := &PostgreSQLDialect{}

	dsn := d.DSN(&config.ConnectionParams{Driver: "pgx", UnixSocket: "/var/run/postgresql"})

	if !strings.Contains(dsn, "host=/var/run/postgresql") {
		t.Errorf("unix socket should become the host: %q", dsn)
	}
}

// TestMySQLDialect_DSN tests that FormatDSN round-trips through the driver's
// own parser
func TestMySQLDialect_DSN(t *testing.T) {
	d := &MySQLDialect{}

	p := &config.ConnectionParams{
		Driver:   "mysql",
		User:     "root",
		Password: "secret",
		Host:     "db.example.com",
		Port:     "3307",
		DBName:   "app_test",
		DriverOptions: map[string]string{
			"charset": "utf8",
		},
	}

	dsn := d.DSN(p)

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("FormatDSN produced an unparseable DSN %q: %v", dsn, err)
	}
	if cfg.User != "root" {
		t.Errorf("expected user root, got %q", cfg.User)
	}
	if cfg.Addr != "db.example.com:3307" {
		t.Errorf("expected addr db.example.com:3307, got %q", cfg.Addr)
	}
	if cfg.DBName != "app_test" {
		t.Errorf("expected dbname app_test, got %q", cfg.DBName)
	}
	if cfg.Params["charset"] != "utf8" {
		t.Errorf("expected charset param utf8, got %v", cfg.Params)
	}
}

func TestMySQLDialect_DSNUnixSocket(t *testing.T) {
	d := &MySQLDialect{}

	dsn := d.DSN(&config.ConnectionParams{Driver: "mysql", User: "root", UnixSocket: "/tmp/mysql.sock", DBName: "t"})

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("unparseable DSN %q: %v", dsn, err)
	}
	if cfg.Net != "unix" || cfg.Addr != "/tmp/mysql.sock" {
		t.Errorf("expected unix socket address, got net=%q addr=%q", cfg.Net, cfg.Addr)
	}
}

// TestSQLiteDialect_DSN tests file-backed DSN forms, including that a
// configured path always yields an on-disk database
func TestSQLiteDialect_DSN(t *testing.T) {
	d := &SQLiteDialect{}

	tests := []struct {
		name string
		p    *config.ConnectionParams
		want string
	}{
		{"file", &config.ConnectionParams{Driver: "sqlite3", Path: "/tmp/t.db"}, "file:/tmp/t.db"},
		{"dbname as path", &config.ConnectionParams{Driver: "sqlite3", DBName: "/tmp/named.db"}, "file:/tmp/named.db"},
		{
			"path wins over memory",
			&config.ConnectionParams{Driver: "sqlite3", Memory: true, Path: "/tmp/t.db"},
			"file:/tmp/t.db",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.DSN(tt.p); got != tt.want {
				t.Errorf("DSN = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestSQLiteDialect_DSNMemory tests the in-memory form: shared cache so all
// pooled connections of one handle see the same database, a unique name so
// separate acquisitions stay isolated
func TestSQLiteDialect_DSNMemory(t *testing.T) {
	d := &SQLiteDialect{}
	p := &config.ConnectionParams{Driver: "sqlite3", Memory: true}

	dsn := d.DSN(p)

	if !strings.HasPrefix(dsn, "file:dbtest_") {
		t.Errorf("memory DSN should be a named database, got %q", dsn)
	}
	if !strings.Contains(dsn, "mode=memory") || !strings.Contains(dsn, "cache=shared") {
		t.Errorf("memory DSN must use a shared in-memory database, got %q", dsn)
	}
	if other := d.DSN(p); other == dsn {
		t.Error("each DSN must name a fresh in-memory database")
	}
}

// TestQuoting tests identifier quoting per dialect
func TestQuoting(t *testing.T) {
	pg := &PostgreSQLDialect{}
	if got := pg.QuoteIdentifier("user"); got != `"user"` {
		t.Errorf(`PostgreSQL QuoteIdentifier("user") = %s, want "user"`, got)
	}

	my := &MySQLDialect{}
	if got := my.QuoteIdentifier("user"); got != "`user`" {
		t.Errorf("MySQL QuoteIdentifier(user) = %s, want `user`", got)
	}
}

// TestSupportsCreateDropDatabase tests the capability split that decides
// between whole-database recreation and object-level drops
func TestSupportsCreateDropDatabase(t *testing.T) {
	if !(&PostgreSQLDialect{}).SupportsCreateDropDatabase() {
		t.Error("postgresql should support CREATE/DROP DATABASE")
	}
	if !(&MySQLDialect{}).SupportsCreateDropDatabase() {
		t.Error("mysql should support CREATE/DROP DATABASE")
	}
	if (&SQLiteDialect{}).SupportsCreateDropDatabase() {
		t.Error("sqlite must not report CREATE/DROP DATABASE support")
	}
}

// TestCreateDropDatabaseSQL tests the administrative statements
func TestCreateDropDatabaseSQL(t *testing.T) {
	pg := &PostgreSQLDialect{}
	if got := pg.DropDatabaseSQL("app_test"); got != `DROP DATABASE IF EXISTS "app_test"` {
		t.Errorf("unexpected drop statement: %s", got)
	}
	if got := pg.CreateDatabaseSQL("app_test"); got != `CREATE DATABASE "app_test"` {
		t.Errorf("unexpected create statement: %s", got)
	}

	my := &MySQLDialect{}
	if got := my.DropDatabaseSQL("app_test"); got != "DROP DATABASE IF EXISTS `app_test`" {
		t.Errorf("unexpected drop statement: %s", got)
	}
}
