package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"gopkg.in/yaml.v3"
)

// FileStore persists history as a YAML list.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Add(ctx context.Context, entry Entry) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, err := f.read()
	if err != nil {
		return nil, err
	}
	updated := prepend(entry, existing)

	data, err := yaml.Marshal(updated)
	if err != nil {
		return nil, utils.WrapIfNotNil(err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return nil, utils.WrapIfNotNil(err, f.path)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return nil, utils.WrapIfNotNil(err, f.path)
	}

	logging.NewLogger(ctx).Debugf("history.FileStore.Add id=%s entries=%d", entry.ID, len(updated))
	return updated, nil
}

func (f *FileStore) List(_ context.Context) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *FileStore) read() ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, utils.WrapIfNotNil(err, f.path)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, utils.WrapIfNotNil(err, f.path)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
