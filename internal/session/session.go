// Package session holds the bearer token obtained from the upstream
// login endpoint. The store is an explicit dependency injected into the
// transport client and the auth service rather than ambient global
// state, so tests can substitute their own instance.
package session

import (
	"strings"
	"sync"
)

// Store is the process-wide slot for the upstream bearer token.
type Store interface {
	// Token returns the current bearer token, or "" when logged out.
	Token() string
	// Set replaces the stored token. A "Bearer " prefix, if present,
	// is stripped so the transport client can re-add it uniformly.
	Set(token string)
	// Clear drops the stored token.
	Clear()
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore creates an empty store. A non-empty initial token
// (the static override for environments without interactive login)
// seeds the store at boot.
func NewMemoryStore(initial string) *MemoryStore {
	s := &MemoryStore{}
	if initial != "" {
		s.Set(initial)
	}
	return s
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *MemoryStore) Set(token string) {
	token = strings.TrimSpace(token)
	if len(token) >= 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}
