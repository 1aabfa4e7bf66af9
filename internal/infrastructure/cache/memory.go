package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a simple in-memory key store with expiration. It backs the
// reminder ledger when Redis is not configured, so dedupe only holds
// within a single process.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]time.Time
	now   func() time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]time.Time),
		now:   time.Now,
	}

	// Start cleanup goroutine to remove expired items
	go store.cleanupExpired()

	return store
}

// MarkSent records key unless a live entry already exists
func (ms *MemoryStore) MarkSent(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	if expireTime, exists := ms.items[key]; exists && now.Before(expireTime) {
		return false, nil
	}
	ms.items[key] = now.Add(ttl)
	return true, nil
}

// Forget removes a key
func (ms *MemoryStore) Forget(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
	return nil
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := ms.now()
		for key, expireTime := range ms.items {
			if !now.Before(expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
