// Package events provides the connection event mechanism of dbtestkit.
// Subscribers are registered by name through factory functions at startup,
// so the set of available subscribers is statically enumerable and no
// reflection-based construction is involved.
package events

import (
	"database/sql"
	"fmt"
	"sort"

	kiterrors "github.com/carlosnayan/dbtestkit/internal/errors"
)

// Event names dispatched by the kit.
const (
	ConnectionOpened = "connection.opened"
	ConnectionClosed = "connection.closed"
)

// Event describes a connection lifecycle notification.
type Event struct {
	Name   string
	Driver string
	DB     *sql.DB
}

// Subscriber observes connection events. SubscribedEvents filters which
// event names Handle receives.
type Subscriber interface {
	SubscribedEvents() []string
	Handle(Event)
}

// Factory constructs a fresh subscriber instance.
type Factory func() Subscriber

// Registry maps subscriber names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under the given name, replacing any previous one.
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// New constructs the named subscriber. Unknown names are a configuration
// error: db_event_subscribers may only reference registered subscribers.
func (r *Registry) New(name string) (Subscriber, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, kiterrors.WrapWithMessage(kiterrors.ErrUnknownSubscriber,
			fmt.Sprintf("unknown event subscriber %q (registered: %v)", name, r.Names()), nil)
	}
	return factory(), nil
}

// Names returns the registered subscriber names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the registry the resolver consults unless given its own.
var DefaultRegistry = NewRegistry()

// Register adds a factory to the default registry.
func Register(name string, factory Factory) {
	DefaultRegistry.Register(name, factory)
}

// Manager fans events out to the subscribers attached to one connection.
type Manager struct {
	subscribers []Subscriber
}

// NewManager creates an empty manager
func NewManager() *Manager {
	return &Manager{}
}

// Subscribe attaches a subscriber to this manager.
func (m *Manager) Subscribe(s Subscriber) {
	m.subscribers = append(m.subscribers, s)
}

// Subscribers returns the attached subscribers in attachment order.
func (m *Manager) Subscribers() []Subscriber {
	return m.subscribers
}

// Dispatch delivers the event to every subscriber that declared interest in
// its name.
func (m *Manager) Dispatch(e Event) {
	for _, s := range m.subscribers {
		for _, name := range s.SubscribedEvents() {
			if name == e.Name {
				s.Handle(e)
				break
			}
		}
	}
}
