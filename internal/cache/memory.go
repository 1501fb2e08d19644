package cache

import (
	"context"
	"sync"
	"time"

	"github.com/mesh-intelligence/notionmap/pkg/types"
)

// MemoryStore is a process-local Cache. Entries expire after the configured
// TTL; a zero TTL keeps them until deleted.
type MemoryStore struct {
	mu     sync.RWMutex
	items  map[string]memoryEntry
	ttl    time.Duration
	closed bool
	now    func() time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		items: make(map[string]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)
}

// Get returns the value stored under key.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, types.ErrCacheDetached
	}
	e, ok := s.items[key]
	if !ok || s.expired(e) {
		return nil, types.ErrCacheMiss
	}
	return append([]byte(nil), e.value...), nil
}

// Set stores value under key.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrCacheDetached
	}
	e := memoryEntry{value: append([]byte(nil), value...)}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	s.items[key] = e
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrCacheDetached
	}
	e, ok := s.items[key]
	delete(s.items, key)
	if !ok || s.expired(e) {
		return types.ErrCacheMiss
	}
	return nil
}

// Clear removes every key.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return types.ErrCacheDetached
	}
	s.items = make(map[string]memoryEntry)
	return nil
}

// Close drops every entry. Later calls fail with ErrCacheDetached.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.items = nil
	return nil
}
