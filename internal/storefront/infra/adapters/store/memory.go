package store

import (
	"context"
	"sync"

	"github.com/meherstore/storefront/internal/storefront/core/ports"
)

var _ ports.Store = (*memoryStore)(nil)

// memoryStore keeps values in a plain map. State is lost on restart, so
// it is only suitable for tests and throwaway local runs.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() ports.Store {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.values[key]
	if !ok {
		return "", ports.ErrNotFound
	}
	return value, nil
}

func (m *memoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
