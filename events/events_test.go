package events

import (
	"testing"

	kiterrors "github.com/carlosnayan/dbtestkit/internal/errors"
)

type recordingSubscriber struct {
	events []string
	seen   []Event
}

func (s *recordingSubscriber) SubscribedEvents() []string {
	return s.events
}

func (s *recordingSubscriber) Handle(e Event) {
	s.seen = append(s.seen, e)
}

// TestRegistry tests factory registration and construction
func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("audit", func() Subscriber {
		return &recordingSubscriber{events: []string{ConnectionOpened}}
	})

	sub, err := r.New("audit")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if sub == nil {
		t.Fatal("expected a subscriber instance")
	}

	// Each call constructs a fresh instance.
	other, err := r.New("audit")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if sub == other {
		t.Error("New must construct a fresh instance per call")
	}
}

// TestRegistry_Unknown tests the configuration error for unregistered names
func TestRegistry_Unknown(t *testing.T) {
	r := NewRegistry()
	r.Register("audit", func() Subscriber { return &recordingSubscriber{} })

	_, err := r.New("tracing")
	if err == nil {
		t.Fatal("expected error for unknown subscriber")
	}
	if !kiterrors.IsUnknownSubscriber(err) {
		t.Errorf("expected unknown-subscriber error, got %v", err)
	}
}

// TestRegistry_Names tests static enumerability
func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.Register("tracing", func() Subscriber { return &recordingSubscriber{} })
	r.Register("audit", func() Subscriber { return &recordingSubscriber{} })

	names := r.Names()
	if len(names) != 2 || names[0] != "audit" || names[1] != "tracing" {
		t.Errorf("expected sorted [audit tracing], got %v", names)
	}
}

// TestManager_Dispatch tests event filtering by subscribed names
func TestManager_Dispatch(t *testing.T) {
	opened := &recordingSubscriber{events: []string{ConnectionOpened}}
	closed := &recordingSubscriber{events: []string{ConnectionClosed}}
	both := &recordingSubscriber{events: []string{ConnectionOpened, ConnectionClosed}}

	m := NewManager()
	m.Subscribe(opened)
	m.Subscribe(closed)
	m.Subscribe(both)

	m.Dispatch(Event{Name: ConnectionOpened, Driver: "sqlite3"})
	m.Dispatch(Event{Name: ConnectionClosed, Driver: "sqlite3"})

	if len(opened.seen) != 1 || opened.seen[0].Name != ConnectionOpened {
		t.Errorf("opened subscriber saw %v", opened.seen)
	}
	if len(closed.seen) != 1 || closed.seen[0].Name != ConnectionClosed {
		t.Errorf("closed subscriber saw %v", closed.seen)
	}
	if len(both.seen) != 2 {
		t.Errorf("both subscriber saw %v", both.seen)
	}
}
