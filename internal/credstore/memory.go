package credstore

import (
	"context"
	"sync"
)

// MemoryStore implements Store in memory.
// Used in tests and one-shot runs where nothing should touch disk.
type MemoryStore struct {
	mu    sync.RWMutex
	creds Credentials
	set   bool
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns the stored credential pair.
func (s *MemoryStore) Get(ctx context.Context) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.set || s.creds.Empty() {
		return Credentials{}, ErrNotFound
	}

	return s.creds, nil
}

// Set overwrites the stored credential pair.
func (s *MemoryStore) Set(ctx context.Context, creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = creds
	s.set = true

	return nil
}

// Clear removes the stored credential pair.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = Credentials{}
	s.set = false

	return nil
}
