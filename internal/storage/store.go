// internal/storage/store.go
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned by backends when a key does not exist
var ErrNotFound = errors.New("storage: key not found")

// Backend persists raw values for the session store
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Health(ctx context.Context) error
	Close() error
}

// Store is the JSON key-value store used for session-scoped records.
// All values are JSON-encoded on write and decoded on read. Backend or
// serialization failures are logged and swallowed: Get reports a miss and
// the write operations become no-ops. Storage unavailability must never
// break a user-facing flow.
type Store struct {
	backend Backend
	log     *logrus.Logger
}

// NewStore creates a new store on top of the given backend
func NewStore(backend Backend, log *logrus.Logger) *Store {
	return &Store{
		backend: backend,
		log:     log,
	}
}

// Get reads the value for key into dest. It returns false when the key is
// absent or the read failed for any reason.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	data, err := s.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.WithError(err).WithField("key", key).Error("Error reading from storage")
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		s.log.WithError(err).WithField("key", key).Error("Error decoding stored value")
		return false
	}

	return true
}

// Set writes the JSON encoding of value under key
func (s *Store) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Error("Error encoding value for storage")
		return
	}

	if err := s.backend.Set(ctx, key, data); err != nil {
		s.log.WithError(err).WithField("key", key).Error("Error writing to storage")
	}
}

// Remove deletes the value stored under key
func (s *Store) Remove(ctx context.Context, key string) {
	if err := s.backend.Remove(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		s.log.WithError(err).WithField("key", key).Error("Error removing from storage")
	}
}

// Clear deletes every stored value
func (s *Store) Clear(ctx context.Context) {
	if err := s.backend.Clear(ctx); err != nil {
		s.log.WithError(err).Error("Error clearing storage")
	}
}

// Health checks the backend health
func (s *Store) Health(ctx context.Context) error {
	return s.backend.Health(ctx)
}

// Close closes the underlying backend
func (s *Store) Close() error {
	return s.backend.Close()
}

// Persisted record names. These mirror the keys the web client kept in
// localStorage, scoped here per session.
const (
	KeyStoreInfo   = "zakaz_store_info"
	KeyCart        = "zakaz_cart"
	KeyUserInfo    = "zakaz_user_info"
	KeyAccountInfo = "zakaz_account_info"
)

// SessionKey builds the storage key for a session-scoped record
func SessionKey(sessionID, name string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, name)
}
