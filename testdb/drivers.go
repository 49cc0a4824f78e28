package testdb

// The kit exists to open these drivers, so they are registered
// unconditionally rather than behind build tags.
import (
	_ "github.com/go-sql-driver/mysql"   // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"   // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"      // SQLite driver (embedded fallback)
)
