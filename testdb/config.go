package testdb

import (
	"github.com/carlosnayan/dbtestkit/internal/config"
)

// Config is the ambient flat configuration map (db_*, tmpdb_*, db_path,
// db_event_subscribers keys).
type Config = config.Map

// Params is the resolved, typed connection parameter set.
type Params = config.ConnectionParams

// LoadConfig builds the ambient configuration from the dbtest.conf file (or
// the given path), a .env file and the DB_*/TMPDB_* process environment.
func LoadConfig(path string) (Config, error) {
	return config.Load(path)
}
