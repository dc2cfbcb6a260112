package store

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	if err := s.InitSchema(); err != nil {
		t.Fatalf("failed to init schema: %v", err)
	}
	return s
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestStore(t)

	if got := s.Token(); got != "" {
		t.Errorf("expected empty token before save, got %q", got)
	}

	if err := s.SaveToken("abc123"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if got := s.Token(); got != "abc123" {
		t.Errorf("expected abc123, got %q", got)
	}

	// Saving again replaces; one token, one session.
	if err := s.SaveToken("def456"); err != nil {
		t.Fatalf("second save failed: %v", err)
	}
	if got := s.Token(); got != "def456" {
		t.Errorf("expected def456, got %q", got)
	}

	if err := s.ClearToken(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if got := s.Token(); got != "" {
		t.Errorf("expected empty token after clear, got %q", got)
	}
}

func TestClearTokenWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	if err := s.ClearToken(); err != nil {
		t.Errorf("clearing an empty store should not fail: %v", err)
	}
}
