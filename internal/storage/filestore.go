package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV keeps one JSON file per key inside a data directory. Writes go to a
// temporary file first and are renamed into place, so an interrupted write
// never corrupts the previous blob.
type FileKV struct {
	dir string
}

// NewFileKV creates the data directory if needed and returns a store over it.
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Load reads the blob stored under key, or ErrNoData if none exists.
func (f *FileKV) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoData
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}

// Save atomically replaces the blob stored under key.
func (f *FileKV) Save(key string, data []byte) error {
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("failed to replace %s: %w", key, err)
	}
	return nil
}
