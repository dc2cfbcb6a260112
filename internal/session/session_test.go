package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shikamusenge/sumtech-clients/internal/api"
	"github.com/shikamusenge/sumtech-clients/internal/models"
)

// Mock TokenStore
type mockTokens struct {
	mu    sync.Mutex
	token string
}

func (m *mockTokens) SaveToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *mockTokens) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *mockTokens) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// fakeBackend serves just enough of the auth surface: /user validates the
// bearer token against validToken, /login issues it.
type fakeBackend struct {
	validToken  string
	user        models.User
	loginToken  string
	loginUser   *models.User
	logoutFails bool

	mu       sync.Mutex
	requests []string
}

func (f *fakeBackend) record(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid token"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"user": f.user})
	})
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		json.NewEncoder(w).Encode(map[string]any{"token": f.loginToken, "user": f.loginUser})
	})
	mux.HandleFunc("POST /logout", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		if f.logoutFails {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "session store down"})
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /register", func(w http.ResponseWriter, r *http.Request) {
		f.record(r)
		w.WriteHeader(http.StatusCreated)
	})
	return mux
}

func newTestStore(t *testing.T, f *fakeBackend, tokens *mockTokens) *Store {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return NewStore(api.NewClient(srv.URL, tokens), tokens)
}

func TestCheckSessionWithoutToken(t *testing.T) {
	f := &fakeBackend{}
	tokens := &mockTokens{}
	s := newTestStore(t, f, tokens)

	if !s.Loading() {
		t.Error("expected loading before the first check")
	}
	s.CheckSession(context.Background())

	if s.User() != nil {
		t.Error("expected no user")
	}
	if s.Loading() {
		t.Error("expected loading to be false after check")
	}
	if len(f.requests) != 0 {
		t.Errorf("expected no backend call without a token, got %v", f.requests)
	}
}

func TestCheckSessionValidToken(t *testing.T) {
	f := &fakeBackend{validToken: "tok", user: models.User{ID: "u1", Username: "sam"}}
	tokens := &mockTokens{token: "tok"}
	s := newTestStore(t, f, tokens)

	s.CheckSession(context.Background())

	user := s.User()
	if user == nil || user.Username != "sam" {
		t.Fatalf("expected user sam, got %+v", user)
	}
}

func TestCheckSessionExpiredTokenCleared(t *testing.T) {
	f := &fakeBackend{validToken: "fresh"}
	tokens := &mockTokens{token: "stale"}
	s := newTestStore(t, f, tokens)

	s.CheckSession(context.Background())

	if s.User() != nil {
		t.Error("expected no user for a stale token")
	}
	if tokens.Token() != "" {
		t.Errorf("expected the stale token to be cleared, still have %q", tokens.Token())
	}
	if s.Loading() {
		t.Error("expected loading false after failed check")
	}
}

func TestLoginStoresTokenAndAdoptsUser(t *testing.T) {
	f := &fakeBackend{
		loginToken: "tok",
		loginUser:  &models.User{ID: "u1", Username: "sam"},
	}
	tokens := &mockTokens{}
	s := newTestStore(t, f, tokens)

	if err := s.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if tokens.Token() != "tok" {
		t.Errorf("expected stored token, got %q", tokens.Token())
	}
	if user := s.User(); user == nil || user.ID != "u1" {
		t.Errorf("expected adopted user, got %+v", user)
	}
}

func TestLoginWithoutUserReconciles(t *testing.T) {
	// Login returns a token but no user object; the store must fetch the
	// user with the new token instead of guessing.
	f := &fakeBackend{
		validToken: "tok",
		loginToken: "tok",
		user:       models.User{ID: "u1", Username: "sam"},
	}
	tokens := &mockTokens{}
	s := newTestStore(t, f, tokens)

	if err := s.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user := s.User(); user == nil || user.Username != "sam" {
		t.Errorf("expected reconciled user, got %+v", user)
	}
}

func TestLogoutClearsLocalStateEvenWhenBackendFails(t *testing.T) {
	f := &fakeBackend{validToken: "tok", user: models.User{ID: "u1"}, logoutFails: true}
	tokens := &mockTokens{token: "tok"}
	s := newTestStore(t, f, tokens)

	s.CheckSession(context.Background())
	if s.User() == nil {
		t.Fatal("precondition: expected a signed-in user")
	}

	s.Logout(context.Background())

	if s.User() != nil {
		t.Error("expected no user after logout")
	}
	if tokens.Token() != "" {
		t.Errorf("expected token cleared after logout, still have %q", tokens.Token())
	}
}

func TestRegisterReconcilesInsteadOfAssumingLogin(t *testing.T) {
	f := &fakeBackend{validToken: "other"}
	tokens := &mockTokens{}
	s := newTestStore(t, f, tokens)

	if err := s.Register(context.Background(), models.Registration{Username: "sam", Email: "a@b.co", Password: "pw"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// No token was issued, so reconciliation must land on "not signed in".
	if s.User() != nil {
		t.Error("expected no session after registration without a token")
	}
}
