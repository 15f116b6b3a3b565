package practice

import (
	"context"
	"sync"
	"time"
)

// Store memoises successful code lookups for one daily window.  Entries
// from an earlier window are never returned.
type Store interface {
	Get(ctx context.Context, window, code string) (id string, ok bool, err error)
	Set(ctx context.Context, window, code, id string, ttl time.Duration) error
}

// MemoryStore keeps the current window's mappings in a map and drops the
// whole map when the window changes.
type MemoryStore struct {
	mu     sync.Mutex
	window string
	codes  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{codes: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, window, code string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if window != s.window {
		return "", false, nil
	}
	id, ok := s.codes[code]
	return id, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, window, code, id string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if window != s.window {
		s.window = window
		s.codes = make(map[string]string)
	}
	s.codes[code] = id
	return nil
}
