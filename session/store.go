// Package session holds the bearer credential for the signed-in user and
// persists it across application restarts. The persisted token is the sole
// source of truth at startup; its absence means "logged out".
package session

import (
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Storage is the persistence port for the credential. The medium (file,
// keychain, ...) is swappable without touching the store.
type Storage interface {
	// Load returns the persisted token, or "" when none is stored.
	Load() (string, error)
	// Save persists the token.
	Save(token string) error
	// Clear removes the persisted token. Clearing an empty storage is not
	// an error.
	Clear() error
}

// Store keeps the current token in memory and mirrors it to Storage.
// No local validation of the token is performed; the remote service decides
// validity on the next authenticated call.
type Store struct {
	mu      sync.RWMutex
	token   string
	storage Storage
	log     *zap.Logger
}

// NewStore creates the store and reads any persisted token.
func NewStore(storage Storage, log *zap.Logger) *Store {
	s := &Store{storage: storage, log: log}

	token, err := storage.Load()
	if err != nil {
		log.Warn("could not read persisted session", zap.Error(err))
		return s
	}
	s.token = token
	return s
}

// Login stores the token in memory and in durable storage.
func (s *Store) Login(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Save(token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	s.token = token
	s.log.Info("session started", zap.String("user", usernameFromToken(token)))
	return nil
}

// Logout clears the token from memory and from durable storage. The
// in-memory token is dropped even when clearing storage fails.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := s.storage.Clear(); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	s.log.Info("session ended")
	return nil
}

// CurrentToken returns the in-memory token, or "" when logged out.
func (s *Store) CurrentToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool {
	return s.CurrentToken() != ""
}

// Username returns the display name carried in the token's claims, or ""
// when the token is absent or carries none.
func (s *Store) Username() string {
	return usernameFromToken(s.CurrentToken())
}

// usernameFromToken decodes the JWT claims without verifying the signature;
// the value is for display only.
func usernameFromToken(token string) string {
	if token == "" {
		return ""
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	if name, ok := claims["username"].(string); ok {
		return name
	}
	if sub, err := claims.GetSubject(); err == nil {
		return sub
	}
	return ""
}
