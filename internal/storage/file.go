// internal/storage/file.go
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend persists session records in a single JSON file. Writes go
// through a temporary file and rename so a crash never leaves a half-written
// snapshot behind.
type FileBackend struct {
	mu   sync.Mutex
	path string
}

// NewFileBackend creates a file backend rooted at path
func NewFileBackend(path string) (*FileBackend, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &FileBackend{path: path}, nil
}

// Get retrieves a raw value by key
func (b *FileBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.load()
	if err != nil {
		return nil, err
	}

	value, ok := records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return value, nil
}

// Set stores a raw value under key
func (b *FileBackend) Set(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.load()
	if err != nil {
		return err
	}

	records[key] = value
	return b.save(records)
}

// Remove deletes a key
func (b *FileBackend) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	records, err := b.load()
	if err != nil {
		return err
	}

	if _, ok := records[key]; !ok {
		return nil
	}

	delete(records, key)
	return b.save(records)
}

// Clear deletes all keys
func (b *FileBackend) Clear(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.save(map[string]json.RawMessage{})
}

// Health verifies the storage file location is writable
func (b *FileBackend) Health(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, err := b.load()
	return err
}

// Close is a no-op
func (b *FileBackend) Close() error {
	return nil
}

func (b *FileBackend) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(b.path)
	if os.IsNotExist(err) {
		return map[string]json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}

	records := map[string]json.RawMessage{}
	if len(data) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse storage file: %w", err)
	}

	return records, nil
}

func (b *FileBackend) save(records map[string]json.RawMessage) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}

	return nil
}
