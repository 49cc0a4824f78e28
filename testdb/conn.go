package testdb

import (
	"database/sql"

	"github.com/carlosnayan/dbtestkit/events"
	"github.com/carlosnayan/dbtestkit/internal/config"
	"github.com/carlosnayan/dbtestkit/internal/dialect"
)

// Conn is a live test-database connection together with the event manager
// its subscribers are attached to.
type Conn struct {
	*sql.DB

	params  *config.ConnectionParams
	manager *events.Manager
}

func newConn(db *sql.DB, p *config.ConnectionParams, m *events.Manager) *Conn {
	return &Conn{DB: db, params: p, manager: m}
}

// Driver returns the resolved driver identifier.
func (c *Conn) Driver() string {
	return c.params.Driver
}

// Params returns the parameters the connection was opened with.
func (c *Conn) Params() *config.ConnectionParams {
	return c.params
}

// Events returns the connection's event manager, so callers can attach
// additional subscribers after acquisition.
func (c *Conn) Events() *events.Manager {
	return c.manager
}

// Close notifies subscribers and closes the underlying connection.
func (c *Conn) Close() error {
	c.manager.Dispatch(events.Event{Name: events.ConnectionClosed, Driver: c.params.Driver, DB: c.DB})
	return c.DB.Close()
}

// openParams opens a database/sql connection for the given parameters. An
// unresolvable driver name surfaces here; everything else (bad credentials,
// unreachable hosts) surfaces lazily from the driver on first use.
func openParams(p *config.ConnectionParams) (*sql.DB, error) {
	d, err := dialect.ForDriver(p.Driver)
	if err != nil {
		return nil, err
	}
	return sql.Open(d.DriverName(), d.DSN(p))
}
