// internal/domain/session/service.go
package session

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tulqinjon2001/zakaz-web-app/internal/storage"
)

// Validation errors for profile updates
var (
	ErrNameRequired  = errors.New("session: name is required")
	ErrPhoneRequired = errors.New("session: phone is required")
)

// State is the startup state of a session. Ready is true once a store has
// been selected; catalog fetches are skipped entirely until then.
type State struct {
	Ready bool       `json:"ready"`
	Store *StoreInfo `json:"store,omitempty"`
}

// Service owns the session-scoped persisted records
type Service struct {
	kv  *storage.Store
	log *logrus.Logger
}

// NewService creates a new session service
func NewService(kv *storage.Store, log *logrus.Logger) *Service {
	return &Service{
		kv:  kv,
		log: log,
	}
}

// Bootstrap resolves the startup state for a session. This is a pure read:
// nothing is written.
func (s *Service) Bootstrap(ctx context.Context, sessionID string) State {
	store := s.SelectedStore(ctx, sessionID)
	return State{
		Ready: store != nil,
		Store: store,
	}
}

// SelectedStore returns the persisted store selection, or nil when no store
// has been selected yet
func (s *Service) SelectedStore(ctx context.Context, sessionID string) *StoreInfo {
	var info StoreInfo
	if !s.kv.Get(ctx, storage.SessionKey(sessionID, storage.KeyStoreInfo), &info) {
		return nil
	}
	if info.ID == "" {
		return nil
	}
	return &info
}

// SelectStore persists the store selection
func (s *Service) SelectStore(ctx context.Context, sessionID string, info StoreInfo) {
	s.kv.Set(ctx, storage.SessionKey(sessionID, storage.KeyStoreInfo), info)
}

// LeaveStore clears the store selection, returning the session to the store
// selection flow
func (s *Service) LeaveStore(ctx context.Context, sessionID string) {
	s.kv.Remove(ctx, storage.SessionKey(sessionID, storage.KeyStoreInfo))
}

// SavedUserInfo returns the saved checkout contact info, or nil
func (s *Service) SavedUserInfo(ctx context.Context, sessionID string) *UserInfo {
	var info UserInfo
	if !s.kv.Get(ctx, storage.SessionKey(sessionID, storage.KeyUserInfo), &info) {
		return nil
	}
	return &info
}

// Account returns the saved account profile, or nil
func (s *Service) Account(ctx context.Context, sessionID string) *AccountInfo {
	var info AccountInfo
	if !s.kv.Get(ctx, storage.SessionKey(sessionID, storage.KeyAccountInfo), &info) {
		return nil
	}
	return &info
}

// SaveAccount validates and persists the account profile
func (s *Service) SaveAccount(ctx context.Context, sessionID string, info AccountInfo) error {
	if strings.TrimSpace(info.Name) == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(info.Phone) == "" {
		return ErrPhoneRequired
	}

	s.kv.Set(ctx, storage.SessionKey(sessionID, storage.KeyAccountInfo), info)
	return nil
}
