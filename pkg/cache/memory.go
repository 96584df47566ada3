package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// Memory is an in-process Store backed by a map. Expiry is lazy: an
// entry past its TTL is dropped when it is next read. An optional
// cleanup ticker sweeps expired entries so keys that are never read
// again do not accumulate.
type Memory[V any] struct {
	mu    sync.RWMutex
	items map[string]memoryEntry[V]
	now   Clock

	cleanupInterval time.Duration
	stop            chan struct{}
}

// MemoryOption configures a Memory store.
type MemoryOption[V any] func(*Memory[V])

// WithClock replaces the wall clock, for deterministic expiry in tests.
func WithClock[V any](now Clock) MemoryOption[V] {
	return func(m *Memory[V]) {
		if now != nil {
			m.now = now
		}
	}
}

// WithCleanupInterval starts a background sweep of expired entries
// every interval. Callers that set it must Close the store.
func WithCleanupInterval[V any](interval time.Duration) MemoryOption[V] {
	return func(m *Memory[V]) {
		if interval > 0 {
			m.cleanupInterval = interval
		}
	}
}

// NewMemory creates an in-process TTL store.
func NewMemory[V any](opts ...MemoryOption[V]) *Memory[V] {
	m := &Memory[V]{
		items: make(map[string]memoryEntry[V]),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cleanupInterval > 0 {
		m.stop = make(chan struct{})
		go m.cleanupLoop(m.cleanupInterval)
	}
	return m
}

// Close stops the cleanup goroutine, if one was started. The store
// stays usable; only the background sweep ends.
func (m *Memory[V]) Close() {
	if m.stop != nil {
		close(m.stop)
		m.stop = nil
	}
}

func (m *Memory[V]) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *Memory[V]) sweep() {
	now := m.now()
	m.mu.Lock()
	for key, entry := range m.items {
		if now.After(entry.expiresAt) {
			delete(m.items, key)
		}
	}
	m.mu.Unlock()
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, bool) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}

	if m.now().After(entry.expiresAt) {
		m.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry between the two lock acquisitions.
		if cur, ok := m.items[key]; ok && m.now().After(cur.expiresAt) {
			delete(m.items, key)
		}
		m.mu.Unlock()

		var zero V
		return zero, false
	}

	return entry.value, true
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) {
	m.mu.Lock()
	m.items[key] = memoryEntry[V]{value: value, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
}

func (m *Memory[V]) Invalidate(_ context.Context, keys ...string) {
	m.mu.Lock()
	for _, key := range keys {
		delete(m.items, key)
	}
	m.mu.Unlock()
}

func (m *Memory[V]) InvalidateAll(_ context.Context) {
	m.mu.Lock()
	m.items = make(map[string]memoryEntry[V])
	m.mu.Unlock()
}

// Len reports the number of entries currently held, expired or not.
func (m *Memory[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
