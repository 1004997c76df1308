package history

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Add(_ context.Context, entry Entry) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = prepend(entry, m.entries)
	return append([]Entry(nil), m.entries...), nil
}

func (m *MemoryStore) List(_ context.Context) ([]Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...), nil
}
