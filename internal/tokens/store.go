// Package tokens persists the access/refresh token pair between runs. It is
// the local-storage analog of the browser client: two token strings under
// fixed key names, whose presence gates the startup authentication check.
package tokens

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/radiy-net/radiy-client/pkg/logging"
)

// Fixed storage key names, kept identical to the browser client so a shared
// state file stays interchangeable.
const (
	AccessKey  = "jwt_access_radiy_token"
	RefreshKey = "jwt_refresh_radiy_token"
)

// Store holds the token pair and mirrors it to a JSON file on every change.
type Store struct {
	mu     sync.Mutex
	path   string
	pair   map[string]string
	logger *zap.Logger
	now    func() time.Time
}

// NewStore creates a token store backed by the given file path. A missing or
// unreadable file yields an empty store, not an error.
func NewStore(path string) *Store {
	s := &Store{
		path:   path,
		pair:   map[string]string{},
		logger: logging.GetLogger().With(zap.String("component", "token-store")),
		now:    time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read token file", zap.Error(err))
		}
		return s
	}
	if err := json.Unmarshal(data, &s.pair); err != nil {
		s.logger.Warn("Failed to parse token file", zap.Error(err))
		s.pair = map[string]string{}
	}
	return s
}

// Access returns the stored access token, or an empty string when no token is
// stored or the stored one is already expired. An expired token is treated as
// absent so startup goes straight to re-authentication instead of issuing a
// doomed request.
func (s *Store) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := s.pair[AccessKey]
	if token == "" {
		return ""
	}
	if s.expired(token) {
		return ""
	}
	return token
}

// Refresh returns the stored refresh token, or an empty string
func (s *Store) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pair[RefreshKey]
}

// Set stores a new token pair and persists it
func (s *Store) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pair[AccessKey] = access
	s.pair[RefreshKey] = refresh
	return s.persist()
}

// Clear drops both tokens and persists the empty pair
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.pair, AccessKey)
	delete(s.pair, RefreshKey)
	return s.persist()
}

// expired reports whether the token carries an exp claim in the past. Tokens
// that do not parse or carry no expiry are kept; the gateway's 401 handling
// covers them.
func (s *Store) expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(s.now())
}

func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.pair, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create token dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}
