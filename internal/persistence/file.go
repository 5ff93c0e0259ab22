package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type fileAdapter struct {
	dir string
}

// NewFileAdapter stores each collection as <dir>/<key>.json.
func NewFileAdapter(dir string) (Adapter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &fileAdapter{dir: dir}, nil
}

func (a *fileAdapter) path(key string) string {
	return filepath.Join(a.dir, key+".json")
}

func (a *fileAdapter) Load(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(a.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	return data, nil
}

// Save writes through a temp file and renames so readers never observe a
// partially written collection.
func (a *fileAdapter) Save(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(a.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write collection %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), a.path(key)); err != nil {
		return fmt.Errorf("failed to replace collection %s: %w", key, err)
	}
	return nil
}
