// Package session keeps the authentication token for the current client.
//
// The token is opaque: nothing here inspects or validates it.
package session

import (
	"context"
	"sync"
)

type Store interface {
	// Token returns the current token and whether one is present.
	Token(ctx context.Context) (string, bool, error)
	SetToken(ctx context.Context, token string) error
	// Clear removes the token; later Token calls report it absent.
	Clear(ctx context.Context) error
}

// MemoryStore lives as long as the process.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Token(context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.token != "", nil
}

func (m *MemoryStore) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}
