// ABOUTME: Durable holder of the bearer credential with an in-memory mirror
// ABOUTME: Reads are served from memory; writes go to memory and the state file

package tokenstore

import (
	"log/slog"
	"sync"
)

// Key is the durable key the credential is persisted under
const Key = "faris-auth"

// Backend is the durable storage the credential is mirrored to
type Backend interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store holds exactly one bearer token.
// Storage failures are logged and otherwise ignored: an unreadable
// credential is the same as no credential.
type Store struct {
	backend Backend
	logger  *slog.Logger

	mu    sync.RWMutex
	token string
}

// New creates a token store and rehydrates the persisted credential
func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{backend: backend, logger: logger}

	if backend != nil {
		token, ok, err := backend.Get(Key)
		if err != nil {
			logger.Warn("credential unreadable, starting logged out", "error", err)
		} else if ok {
			s.token = token
		}
	}
	return s
}

// Get returns the current token, or false when none is held
func (s *Store) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// Set stores token in memory and durable storage.
// An empty token is equivalent to Clear.
func (s *Store) Set(token string) {
	if token == "" {
		s.Clear()
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.persist(token)
}

// Clear removes the token from memory and durable storage
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// ClearIf removes the token only if it still equals token.
// It reports whether the store was cleared.
func (s *Store) ClearIf(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token != token {
		return false
	}
	s.clearLocked()
	return true
}

func (s *Store) clearLocked() {
	s.token = ""
	if s.backend == nil {
		return
	}
	if err := s.backend.Delete(Key); err != nil {
		s.logger.Warn("failed to erase persisted credential", "error", err)
	}
}

func (s *Store) persist(token string) {
	if s.backend == nil {
		return
	}
	if err := s.backend.Set(Key, token); err != nil {
		s.logger.Warn("failed to persist credential", "error", err)
	}
}
