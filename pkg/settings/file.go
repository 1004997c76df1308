package settings

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/logging"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/model"
	"github.com/Nephrolytics-ai/lecture-summarizer/pkg/utils"
	"gopkg.in/yaml.v3"
)

// FileStore keeps settings in a YAML document. A missing file loads as empty
// settings.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(ctx context.Context) (model.StoredSettings, error) {
	var stored model.StoredSettings

	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		logging.NewLogger(ctx).Debugf("settings.FileStore.Load path=%s missing, using empty settings", f.path)
		return stored, nil
	}
	if err != nil {
		return stored, utils.WrapIfNotNil(err, f.path)
	}

	if err := yaml.Unmarshal(data, &stored); err != nil {
		return model.StoredSettings{}, utils.WrapIfNotNil(err, f.path)
	}
	return stored, nil
}

func (f *FileStore) Save(ctx context.Context, stored model.StoredSettings) error {
	data, err := yaml.Marshal(stored)
	if err != nil {
		return utils.WrapIfNotNil(err)
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return utils.WrapIfNotNil(err, dir)
		}
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return utils.WrapIfNotNil(err, f.path)
	}

	logging.NewLogger(ctx).Infof("settings.FileStore.Save path=%s", f.path)
	return nil
}
