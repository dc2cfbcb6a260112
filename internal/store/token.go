package store

import (
	"database/sql"
	"log/slog"
)

// SaveToken upserts the single stored session token. The CHECK (id = 1)
// constraint keeps the table at one row: one token, one session.
func (s *Store) SaveToken(token string) error {
	query := `
		INSERT INTO credentials (id, token, saved_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, saved_at = CURRENT_TIMESTAMP
	`
	_, err := s.DB.Exec(query, token)
	return err
}

// Token returns the stored session token, or "" when none is saved.
// Implements api.TokenSource.
func (s *Store) Token() string {
	var token string
	err := s.DB.QueryRow(`SELECT token FROM credentials WHERE id = 1`).Scan(&token)
	if err != nil {
		if err != sql.ErrNoRows {
			slog.Error("Error reading stored token", "error", err)
		}
		return ""
	}
	return token
}

func (s *Store) ClearToken() error {
	_, err := s.DB.Exec(`DELETE FROM credentials WHERE id = 1`)
	return err
}
