package client

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"bastionctl/auth"
)

// Session holds the current access/refresh token pair. It is the only
// mutable shared state in the client; all writes go through SetTokens and
// Clear. A nil store keeps the session memory-only.
type Session struct {
	mu        sync.RWMutex
	access    string
	refresh   string
	store     auth.TokenStore
	onExpired []func()
}

// NewSession constructs a session, loading any stored credentials. Absent
// stored tokens mean the session starts unauthenticated.
func NewSession(store auth.TokenStore) (*Session, error) {
	s := &Session{store: store}
	if store == nil {
		return s, nil
	}
	access, refresh, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load stored credentials: %w", err)
	}
	s.access = access
	s.refresh = refresh
	return s, nil
}

// AuthHeader returns the bearer header for the current access token.
// The second return value is false when the session is unauthenticated.
func (s *Session) AuthHeader() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.access == "" {
		return "", false
	}
	return "Bearer " + s.access, true
}

// Authenticated reports whether an access token is held. This is a liveness
// heuristic, not a validity guarantee; the server may still reject the token.
func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != ""
}

// RefreshToken returns the current refresh token, or "" if refresh is
// unavailable.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

// SetTokens updates the in-memory pair and persists it. An empty refresh
// keeps the previous refresh token; some exchanges (password change) return
// only a new access token.
func (s *Session) SetTokens(access, refresh string) error {
	s.mu.Lock()
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	refresh = s.refresh
	s.mu.Unlock()

	if s.store == nil {
		return nil
	}
	if err := s.store.Save(access, refresh); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}
	return nil
}

// Clear wipes the in-memory and persisted pair and notifies session-expired
// subscribers. Persistence failures are logged but do not keep the session
// alive.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.access = ""
	s.refresh = ""
	subscribers := make([]func(), len(s.onExpired))
	copy(subscribers, s.onExpired)
	s.mu.Unlock()

	var err error
	if s.store != nil {
		if err = s.store.Clear(); err != nil {
			log.Warn().Err(err).Msg("Failed to clear persisted credentials")
		}
	}
	for _, fn := range subscribers {
		fn()
	}
	return err
}

// OnExpired registers a callback invoked whenever the session is cleared,
// so callers can prompt for a fresh login without the client knowing
// about them.
func (s *Session) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = append(s.onExpired, fn)
}
