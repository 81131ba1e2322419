package profile

import (
	"context"
	"sync"

	"github.com/kapu/tictac-client/internal/wire"
)

// memstore keeps profile state for the process lifetime only. Used when no
// REDIS_URL is configured.
type memstore struct {
	mu       sync.RWMutex
	accounts []wire.AccountEntry
	lastRoom string
}

func NewMemory() Store {
	return &memstore{}
}

func (m *memstore) SaveAccounts(_ context.Context, entries []wire.AccountEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = append([]wire.AccountEntry(nil), entries...)
	return nil
}

func (m *memstore) LoadAccounts(_ context.Context) ([]wire.AccountEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]wire.AccountEntry(nil), m.accounts...), nil
}

func (m *memstore) SaveLastRoom(_ context.Context, room string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRoom = room
	return nil
}

func (m *memstore) LastRoom(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastRoom, nil
}

func (m *memstore) Close() error { return nil }
