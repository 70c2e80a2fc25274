package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// JSONBackend stores each slot as a pretty-printed JSON file in a directory.
type JSONBackend struct {
	dir string
}

// NewJSONBackend creates a JSONBackend rooted at the given directory.
func NewJSONBackend(dir string) *JSONBackend {
	return &JSONBackend{dir: dir}
}

// Dir returns the backing directory.
func (b *JSONBackend) Dir() string {
	return b.dir
}

// Put writes data to <dir>/<key>.json, creating the directory if needed.
func (b *JSONBackend) Put(key string, data []byte) error {
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return err
	}
	return os.WriteFile(b.slotPath(key), data, 0644)
}

// Get reads <dir>/<key>.json. A missing file maps to ErrNoValue.
func (b *JSONBackend) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(b.slotPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoValue
		}
		return nil, err
	}
	return data, nil
}

// Clear removes every slot file in the directory. Files that are not slot
// files (no .json suffix) are left alone.
func (b *JSONBackend) Clear() error {
	matches, err := filepath.Glob(filepath.Join(b.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Close is a no-op for file-backed storage.
func (b *JSONBackend) Close() error { return nil }

func (b *JSONBackend) slotPath(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// DefaultDataDir returns the default data directory: ~/.config/nota
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "nota"), nil
}

// Open opens the appropriate backend and wraps it in a Gateway.
// Prefers SQLite if the database file exists, otherwise falls back to JSON
// files. When neither medium can be reached the gateway degrades to no-ops.
func Open() *Gateway {
	dir, err := DefaultDataDir()
	if err != nil {
		return NewGateway(nil)
	}

	sqlitePath := filepath.Join(dir, "nota.db")
	if _, err := os.Stat(sqlitePath); err == nil {
		backend, err := NewSQLiteBackend(sqlitePath)
		if err == nil {
			return NewGateway(backend)
		}
	}

	return NewGateway(NewJSONBackend(dir))
}
