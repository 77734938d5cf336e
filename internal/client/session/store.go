package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/clinicdesk/internal/client/storage"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
	"github.com/dmitrijs2005/clinicdesk/internal/logging"
)

// Store is the process-wide session state. It is safe for concurrent use.
//
// Storage failures never reach callers: they are logged and the in-memory
// state is still updated, so navigation keeps working off memory.
type Store struct {
	mu      sync.RWMutex
	state   Session
	storage storage.Storage
	log     logging.Logger
}

// NewStore returns an empty, unauthenticated store. Call InitAuth to
// hydrate it from storage.
func NewStore(s storage.Storage, log logging.Logger) *Store {
	return &Store{
		state:   Session{Roles: []string{}},
		storage: s,
		log:     log.With("component", "session"),
	}
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// IsAuthenticated is a shortcut for Snapshot().IsAuthenticated.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// SetAuth records a successful login. roles may be nil.
//
// token, userID and username must all be non-empty; anything less is
// treated as a logout so the store never holds a half-authenticated state.
// The email attribute is left as is.
func (s *Store) SetAuth(ctx context.Context, token, userID, username string, roles []string) {
	if token == "" || userID == "" || username == "" {
		s.log.Warn(ctx, "incomplete credentials, clearing session",
			"has_token", token != "", "has_user_id", userID != "", "has_username", username != "")
		s.ClearAuth(ctx)
		return
	}

	roles = NormalizeRoles(roles)
	encoded, err := json.Marshal(roles)
	if err != nil {
		// a []string always marshals
		encoded = []byte("[]")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = s.storage.Apply(ctx, map[string]string{
		common.StorageKeyToken:    token,
		common.StorageKeyUserID:   userID,
		common.StorageKeyUsername: username,
		common.StorageKeyRoles:    string(encoded),
	}, nil)
	if err != nil {
		s.log.Error(ctx, "persist session", "error", err)
	}

	s.state.IsAuthenticated = true
	s.state.Token = token
	s.state.UserID = userID
	s.state.Username = username
	s.state.Roles = roles

	s.log.Info(ctx, "session established", "user_id", userID, "roles", roles)
}

// SetUserProfile updates the email attribute only.
func (s *Store) SetUserProfile(ctx context.Context, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(ctx, common.StorageKeyEmail, email); err != nil {
		s.log.Error(ctx, "persist email", "error", err)
	}
	s.state.UserEmail = email
}

// ClearAuth removes every persisted session key and resets memory.
// Calling it on an empty store is a no-op.
func (s *Store) ClearAuth(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked(ctx)
}

func (s *Store) clearLocked(ctx context.Context) {
	if err := s.storage.Remove(ctx, common.SessionStorageKeys...); err != nil {
		s.log.Error(ctx, "clear persisted session", "error", err)
	}
	s.state = Session{Roles: []string{}}
}

// InitAuth hydrates the store from storage. All of token, user id and
// username must be present; otherwise the store (and storage) is cleared.
// Unreadable roles degrade to an empty set with a warning.
func (s *Store) InitAuth(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.read(ctx, common.StorageKeyToken)
	userID := s.read(ctx, common.StorageKeyUserID)
	username := s.read(ctx, common.StorageKeyUsername)

	if token == "" || userID == "" || username == "" {
		s.clearLocked(ctx)
		s.log.Info(ctx, "no stored session")
		return
	}

	s.state = Session{
		IsAuthenticated: true,
		Token:           token,
		UserID:          userID,
		Username:        username,
		UserEmail:       s.read(ctx, common.StorageKeyEmail),
		Roles:           s.parseRoles(ctx, s.read(ctx, common.StorageKeyRoles)),
	}
	s.log.Info(ctx, "session restored", "user_id", userID, "roles", s.state.Roles)
}

func (s *Store) read(ctx context.Context, key string) string {
	v, _, err := s.storage.Get(ctx, key)
	if err != nil {
		s.log.Warn(ctx, "read stored session key", "key", key, "error", err)
		return ""
	}
	return v
}

func (s *Store) parseRoles(ctx context.Context, raw string) []string {
	if raw == "" {
		return []string{}
	}
	var roles []string
	if err := json.Unmarshal([]byte(raw), &roles); err != nil {
		s.log.Warn(ctx, "stored roles are malformed, using none", "error", err)
		return []string{}
	}
	return NormalizeRoles(roles)
}
