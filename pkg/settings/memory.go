package settings

import (
	"context"
	"sync"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
)

type MemoryStore struct {
	mu     sync.RWMutex
	stored model.StoredSettings
}

func NewMemoryStore(initial model.StoredSettings) *MemoryStore {
	return &MemoryStore{stored: initial}
}

func (m *MemoryStore) Load(_ context.Context) (model.StoredSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stored, nil
}

func (m *MemoryStore) Save(_ context.Context, stored model.StoredSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stored = stored
	return nil
}
