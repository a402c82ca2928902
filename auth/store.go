package auth

import (
	"context"
	"sync"

	"bastionctl/db"
)

// TokenStore defines the contract for any component that can persist and
// retrieve the session's credential pair. Different implementations can keep
// tokens in a database, a file, or memory.
type TokenStore interface {
	// Load returns the stored token pair; empty strings mean no stored credentials.
	Load() (accessToken string, refreshToken string, err error)

	// Save stores the token pair, replacing whatever was held before.
	Save(accessToken, refreshToken string) error

	// Clear removes the stored credentials.
	Clear() error
}

// DBStore adapts a db.TokenRepository to the TokenStore contract.
type DBStore struct {
	repo db.TokenRepository
}

// NewDBStore is the constructor for a database-backed token store.
func NewDBStore(repo db.TokenRepository) *DBStore {
	return &DBStore{repo: repo}
}

func (s *DBStore) Load() (string, string, error) {
	token, err := s.repo.Get(context.Background())
	if err != nil {
		return "", "", err
	}
	if token == nil {
		return "", "", nil
	}
	return token.AccessToken, token.RefreshToken, nil
}

func (s *DBStore) Save(accessToken, refreshToken string) error {
	return s.repo.Upsert(context.Background(), &db.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (s *DBStore) Clear() error {
	return s.repo.Delete(context.Background())
}

// MemStore keeps the token pair in memory only. It backs tests and sessions
// that should not outlive the process.
type MemStore struct {
	mu      sync.Mutex
	access  string
	refresh string
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Load() (string, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access, s.refresh, nil
}

func (s *MemStore) Save(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = accessToken
	s.refresh = refreshToken
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
