// Package session holds the authenticated-user identity and persists it
// across process restarts under the fixed "auth-storage" namespace.
// Presence of a persisted user is treated as proof of authentication;
// there is no token, refresh or expiry model beyond the valkey TTL.
package session

import (
	"context"
	"log/slog"
	"sync"

	"quillpress/internal/models"
)

// Namespace keys the persisted session state in every backend.
const Namespace = "auth-storage"

// State is the durable session payload.
type State struct {
	User            *models.User `json:"user"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Backend persists session state durably. Implementations: file (the
// default) and valkey.
type Backend interface {
	// Load returns the persisted state, or nil when none exists.
	Load(ctx context.Context) (*State, error)
	// Save replaces the persisted state.
	Save(ctx context.Context, st *State) error
	// Clear removes the persisted state.
	Clear(ctx context.Context) error
}

// Store is the in-memory session cache, rehydrated from its backend at
// construction and written through on Login and Logout. Safe for
// concurrent use.
type Store struct {
	backend Backend

	mu    sync.RWMutex
	state State
}

// NewStore builds a store over the given backend and rehydrates any
// persisted session. A failed rehydrate logs and starts logged out; it
// never prevents the application from running.
func NewStore(ctx context.Context, backend Backend) *Store {
	s := &Store{backend: backend}

	st, err := backend.Load(ctx)
	if err != nil {
		slog.Error("session rehydrate failed, starting logged out", "error", err)
		return s
	}
	if st != nil && st.IsAuthenticated && st.User != nil {
		s.state = *st
	}
	return s
}

// Login caches the user identity, marks the session authenticated, and
// persists both. The password hash is stripped before storage.
func (s *Store) Login(ctx context.Context, u models.User) error {
	public := u.Public()

	s.mu.Lock()
	s.state = State{User: &public, IsAuthenticated: true}
	st := s.state
	s.mu.Unlock()

	return s.backend.Save(ctx, &st)
}

// Logout clears the cached identity and the persisted state, so a
// subsequent restart does not restore the session.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	return s.backend.Clear(ctx)
}

// User returns the cached identity and whether the session is
// authenticated.
func (s *Store) User() (*models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.state.IsAuthenticated || s.state.User == nil {
		return nil, false
	}
	u := *s.state.User
	return &u, true
}
