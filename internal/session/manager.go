package session

import (
	"context"
	"sync"
)

type Event int

const (
	EventSignedIn Event = iota + 1
	EventSignedOut
)

func (e Event) String() string {
	switch e {
	case EventSignedIn:
		return "signed_in"
	case EventSignedOut:
		return "signed_out"
	default:
		return "unknown"
	}
}

// Manager wraps a Store and tells subscribers when the session starts or ends,
// so authenticated views can refresh without restarting the client.
type Manager struct {
	store Store

	mu          sync.Mutex
	subscribers []func(Event)
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

func (m *Manager) Subscribe(fn func(Event)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) Token(ctx context.Context) (string, bool, error) {
	return m.store.Token(ctx)
}

func (m *Manager) SetToken(ctx context.Context, token string) error {
	if err := m.store.SetToken(ctx, token); err != nil {
		return err
	}
	m.notify(EventSignedIn)
	return nil
}

func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}
	m.notify(EventSignedOut)
	return nil
}

func (m *Manager) notify(e Event) {
	m.mu.Lock()
	subs := make([]func(Event), len(m.subscribers))
	copy(subs, m.subscribers)
	m.mu.Unlock()

	for _, fn := range subs {
		fn(e)
	}
}
