package cache

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Entry is one cached query result. Payload is the JSON-encoded result
// value; Stale marks entries invalidated by a mutation, which remain
// readable as fallback data until the next successful refresh replaces
// them.
type Entry struct {
	Payload   []byte    `json:"payload"`
	FetchedAt time.Time `json:"fetched_at"`
	Stale     bool      `json:"stale"`
}

// Store persists cache entries. Implementations return (nil, nil) on a
// miss; only infrastructure failures are errors.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, key string, entry *Entry) error
	// MarkStale flags every entry whose key starts with prefix.
	MarkStale(ctx context.Context, prefix string) error
	Delete(ctx context.Context, key string) error
	// Flush drops every entry owned by this store.
	Flush(ctx context.Context) error
}

// MemoryStore is the default in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	maxAge  time.Duration
}

// NewMemoryStore creates an in-process store. Entries older than
// maxAge read as misses; zero disables the bound.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
		maxAge:  maxAge,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	if s.maxAge > 0 && time.Since(entry.FetchedAt) > s.maxAge {
		return nil, nil
	}

	copied := *entry
	return &copied, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *entry
	s.entries[key] = &copied
	return nil
}

func (s *MemoryStore) MarkStale(ctx context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if strings.HasPrefix(key, prefix) {
			entry.Stale = true
		}
	}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*Entry)
	return nil
}
