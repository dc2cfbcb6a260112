package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shikamusenge/sumtech-clients/internal/models"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(map[string]any{"user": models.User{ID: "u1", Username: "sam"}})
	}))
	defer backend.Close()

	client := NewClient(backend.URL, staticTokens("tok-1"))
	user, err := client.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok-1" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected an X-Request-ID header")
	}
	if user == nil || user.Username != "sam" {
		t.Errorf("unexpected user: %+v", user)
	}
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte("[]"))
	}))
	defer backend.Close()

	client := NewClient(backend.URL, staticTokens(""))
	if _, err := client.Products(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Errorf("expected no Authorization header, got %q", gotAuth)
	}
}

func TestBackendErrorPayloadSurfaced(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
	}))
	defer backend.Close()

	client := NewClient(backend.URL, staticTokens(""))
	_, err := client.Login(context.Background(), models.Credentials{Email: "a@b.co", Password: "x"})
	if err == nil {
		t.Fatal("expected an error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %T", err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", apiErr.Status)
	}
	if apiErr.Message != "invalid credentials" {
		t.Errorf("expected backend message, got %q", apiErr.Message)
	}
}

func TestNonJSONErrorBodyGetsStatusText(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	client := NewClient(backend.URL, staticTokens(""))
	_, err := client.Products(context.Background())

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *api.Error, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("expected status text fallback, got %q", apiErr.Message)
	}
}

func TestEmptyBodyOnNullCart(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("null")) // user has no cart yet
	}))
	defer backend.Close()

	client := NewClient(backend.URL, staticTokens("t"))
	cart, err := client.Cart(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart == nil || len(cart.Items) != 0 {
		t.Errorf("expected an empty cart, got %+v", cart)
	}
}
