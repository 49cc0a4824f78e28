// Package testdb resolves database connection parameters for tests and
// provisions a clean test database. When nothing is configured it falls back
// to an embedded in-memory SQLite database; when explicit db_* parameters
// are configured it destructively resets the named test database exactly
// once per resolver before handing out connections.
package testdb

import (
	"context"
	"fmt"
	"os"

	"github.com/carlosnayan/dbtestkit/events"
	"github.com/carlosnayan/dbtestkit/internal/config"
	kiterrors "github.com/carlosnayan/dbtestkit/internal/errors"
	"github.com/carlosnayan/dbtestkit/internal/logger"
)

// ExpectDriverEnv is the environment override asserted against the resolved
// driver identifier on connection acquisition.
const ExpectDriverEnv = "EXPECT_DB_DRIVER"

// Resetter performs the one-time destructive setup of the configured test
// database. It is an interface so tests can substitute a spy.
type Resetter interface {
	Reset(ctx context.Context, main, tmp *config.ConnectionParams) error
}

// Resolver owns the one-shot initialization state for a test session. Create
// one per test run and thread it through fixtures; it is not safe for
// concurrent use, sequential test setup is assumed.
type Resolver struct {
	cfg         config.Map
	log         *logger.Logger
	registry    *events.Registry
	resetter    Resetter
	initialized bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger overrides the diagnostic logger (default: all levels, stderr).
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// WithRegistry overrides the subscriber registry (default: events.DefaultRegistry).
func WithRegistry(reg *events.Registry) Option {
	return func(r *Resolver) { r.registry = reg }
}

// WithResetter overrides the schema-reset collaborator.
func WithResetter(rs Resetter) Option {
	return func(r *Resolver) { r.resetter = rs }
}

// NewResolver creates a resolver over the ambient configuration map.
func NewResolver(cfg config.Map, opts ...Option) *Resolver {
	r := &Resolver{
		cfg:      cfg,
		log:      logger.Default(),
		registry: events.DefaultRegistry,
		resetter: &schemaResetter{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MainParams resolves the main connection parameters. The first resolution
// of specified (non-fallback) parameters performs the destructive reset of
// the target database; a failed reset leaves the flag unset so the next
// resolution retries from scratch.
func (r *Resolver) MainParams(ctx context.Context) (*config.ConnectionParams, error) {
	p, err := config.MainParams(r.cfg)
	if err != nil {
		return nil, err
	}

	if !p.Fallback && !r.initialized {
		tmp := config.TmpParams(r.cfg)
		if err := r.resetter.Reset(ctx, p, tmp); err != nil {
			return nil, kiterrors.WrapKitError(kiterrors.ErrSetupFailed, err)
		}
		r.initialized = true
	}

	return p, nil
}

// TmpParams resolves the temporary/administrative connection parameters
// without triggering the destructive reset.
func (r *Resolver) TmpParams() *config.ConnectionParams {
	return config.TmpParams(r.cfg)
}

// TmpConnection opens an administrative connection for callers that only
// need database-level operations.
func (r *Resolver) TmpConnection() (*Conn, error) {
	p := r.TmpParams()
	db, err := openParams(p)
	if err != nil {
		return nil, err
	}
	return newConn(db, p, events.NewManager()), nil
}

// Connection resolves the main parameters and opens a brand-new connection.
// Connections are never pooled or reused across calls; the caller owns the
// returned connection's lifecycle.
//
// A diagnostic line naming the resolved driver and its provenance is written
// to the error stream first; then the EXPECT_DB_DRIVER override is checked;
// then configured event subscribers are attached and notified.
func (r *Resolver) Connection(ctx context.Context) (*Conn, error) {
	p, err := r.MainParams(ctx)
	if err != nil {
		return nil, err
	}

	db, err := openParams(p)
	if err != nil {
		return nil, err
	}

	provenance := "specified"
	if p.Fallback {
		provenance = "fallback"
	}
	r.log.Diag("Using DB driver %s (from %s connection params)", p.Driver, provenance)

	if expected := os.Getenv(ExpectDriverEnv); expected != "" && expected != p.Driver {
		db.Close()
		return nil, kiterrors.WrapWithMessage(kiterrors.ErrDriverMismatch,
			fmt.Sprintf("expected driver %q (%s), resolved %q", expected, ExpectDriverEnv, p.Driver), nil)
	}

	manager := events.NewManager()
	for _, name := range config.Subscribers(r.cfg) {
		sub, err := r.registry.New(name)
		if err != nil {
			db.Close()
			return nil, err
		}
		manager.Subscribe(sub)
	}

	conn := newConn(db, p, manager)
	manager.Dispatch(events.Event{Name: events.ConnectionOpened, Driver: p.Driver, DB: db})

	return conn, nil
}
