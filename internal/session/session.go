// Package session holds the gateway's authentication state: who is signed in,
// and the token that proves it. The process carries at most one session, the
// same way one browser tab does.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/models"
)

// TokenStore persists the session token across restarts.
type TokenStore interface {
	SaveToken(token string) error
	Token() string
	ClearToken() error
}

// Store is the process-wide session state. All fields are rebuilt from the
// backend; only the token survives a restart, via the TokenStore.
type Store struct {
	api    *api.Client
	tokens TokenStore

	mu      sync.RWMutex
	user    *models.User
	loading bool
}

func NewStore(client *api.Client, tokens TokenStore) *Store {
	return &Store{api: client, tokens: tokens, loading: true}
}

// CheckSession reconciles local state with the backend. With no stored token
// it just clears the user; with one, the token either validates (user
// adopted) or is dropped from storage so we never retry a dead token.
// Loading is marked false exactly once per call, on every path.
func (s *Store) CheckSession(ctx context.Context) {
	defer s.setLoading(false)

	if s.tokens.Token() == "" {
		s.setUser(nil)
		return
	}

	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		slog.Debug("Stored token did not validate", "error", err)
		if err := s.tokens.ClearToken(); err != nil {
			slog.Warn("Failed to clear stored token", "error", err)
		}
		s.setUser(nil)
		return
	}
	s.setUser(user)
}

// Login submits credentials. The backend may return a token, a user, or both;
// the token is persisted when present, and a missing user is reconciled with
// a follow-up session check rather than guessed at.
func (s *Store) Login(ctx context.Context, creds models.Credentials) error {
	result, err := s.api.Login(ctx, creds)
	if err != nil {
		return err
	}

	if result.Token != "" {
		if err := s.tokens.SaveToken(result.Token); err != nil {
			return fmt.Errorf("saving session token: %w", err)
		}
	}
	if result.User != nil {
		s.setUser(result.User)
		s.setLoading(false)
		return nil
	}
	s.CheckSession(ctx)
	return nil
}

// Register creates the account and then reconciles. It never assumes the
// backend opened a session as a side effect of registration.
func (s *Store) Register(ctx context.Context, reg models.Registration) error {
	if err := s.api.Register(ctx, reg); err != nil {
		return err
	}
	s.CheckSession(ctx)
	return nil
}

// Logout tells the backend best-effort and then unconditionally clears local
// state. A user who asked to leave must never be left looking signed in, no
// matter what the backend said.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		slog.Warn("Backend logout failed, clearing local session anyway", "error", err)
	}
	if err := s.tokens.ClearToken(); err != nil {
		slog.Warn("Failed to clear stored token", "error", err)
	}
	s.setUser(nil)
}

func (s *Store) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	if user != nil {
		s.setUser(user)
	}
	return nil
}

func (s *Store) UpdatePassword(ctx context.Context, change models.PasswordChange) error {
	return s.api.UpdatePassword(ctx, change)
}

// User returns the signed-in user, or nil. The pointer is a copy; callers may
// not mutate session state through it.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) Authenticated() bool {
	return s.User() != nil
}

// Loading reports whether the startup session check has completed yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store) setUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}
