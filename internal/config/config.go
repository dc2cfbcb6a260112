package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	BackendURL   string
	DBPath       string
	CSRFKey      []byte
	SessionKey   []byte
	CookieDomain string
	CookieSecure bool
	PollInterval time.Duration
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", "8686"),
		BackendURL:   getEnv("BACKEND_URL", "http://localhost:5000"),
		DBPath:       getEnv("DB_PATH", "./sumtech.db"),
		CookieDomain: getEnv("COOKIE_DOMAIN", ""),
		CookieSecure: getEnv("COOKIE_SECURE", "false") == "true",
		PollInterval: 5 * time.Second,
	}

	// CSRF Key (critical for security)
	cfg.CSRFKey = loadKey("CSRF_KEY")

	// Session Key (critical for security)
	cfg.SessionKey = loadKey("SESSION_KEY")

	if _, err := url.Parse(cfg.BackendURL); err != nil {
		slog.Error("Invalid BACKEND_URL. Falling back to default.", "BACKEND_URL", cfg.BackendURL)
		cfg.BackendURL = "http://localhost:5000"
	}

	if v := os.Getenv("CART_POLL_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			slog.Warn("Invalid CART_POLL_INTERVAL, keeping default", "value", v)
		} else {
			cfg.PollInterval = d
		}
	}

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8686"
	}

	return cfg, nil
}

// loadKey decodes a base64 key from the environment, generating a throwaway
// development key when it is missing or too short.
func loadKey(name string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// generateRandomBytes generates a random byte slice of specified length
// Uses crypto/rand for secure random numbers.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil { // Use crypto/rand
		slog.Error("Failed to read random bytes", "error", err)
		// Fallback to a less secure key if crypto/rand fails. Only here to
		// prevent a panic, never for production use.
		fallbackKey := "fallback-insecure-key-" + strconv.FormatInt(time.Now().UnixNano(), 10)
		if len(fallbackKey) < n {
			paddedKey := make([]byte, n)
			copy(paddedKey, fallbackKey)
			return paddedKey
		}
		return []byte(fallbackKey)[:n]
	}
	return b
}
