// Package cache provides TTL caching with single-flight deduplication of
// concurrent misses on the same key.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a byte-level cache backend with per-entry TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Clear(ctx context.Context)
}

type entry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore keeps entries in a mutex-guarded map. Expiry is checked at
// lookup time; a background sweep bounds memory but correctness never
// depends on it running.
type MemoryStore struct {
	data   map[string]entry
	mutex  sync.RWMutex
	ticker *time.Ticker
	stopCh chan struct{}
}

// NewMemoryStore creates a memory-backed store with a periodic expiry sweep.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		data:   make(map[string]entry),
		ticker: time.NewTicker(5 * time.Minute),
		stopCh: make(chan struct{}),
	}

	go store.sweep()
	return store
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	e, exists := s.data[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		return nil, false
	}

	return e.data, true
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if value == nil {
		return
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data[key] = entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
}

func (s *MemoryStore) Delete(ctx context.Context, key string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.data, key)
}

func (s *MemoryStore) Clear(ctx context.Context) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.data = make(map[string]entry)
}

// Stop terminates the background sweep goroutine.
func (s *MemoryStore) Stop() {
	close(s.stopCh)
}

func (s *MemoryStore) sweep() {
	for {
		select {
		case <-s.ticker.C:
			s.removeExpiredEntries()
		case <-s.stopCh:
			s.ticker.Stop()
			return
		}
	}
}

func (s *MemoryStore) removeExpiredEntries() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	for key, e := range s.data {
		if now.After(e.expiresAt) {
			delete(s.data, key)
		}
	}
}
