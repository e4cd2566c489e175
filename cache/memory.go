package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

// Memory is an in-process PageCache: a key -> {body, expiry} map guarded by
// an RWMutex. Expired entries are dropped lazily on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time // swapped in tests
}

var _ PageCache = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.RLock()
	cached, exists := m.entries[key]
	m.mu.RUnlock()
	if !exists {
		return nil, false
	}
	if m.now().After(cached.expiresAt) {
		m.mu.Lock()
		// re-check: another writer may have refreshed the key
		if current, ok := m.entries[key]; ok && m.now().After(current.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false
	}
	return cached.body, true
}

func (m *Memory) Set(ctx context.Context, key string, body []byte, ttl time.Duration) {
	copied := make([]byte, len(body))
	copy(copied, body)
	m.mu.Lock()
	m.entries[key] = entry{
		body:      copied,
		expiresAt: m.now().Add(ttl),
	}
	m.mu.Unlock()
}

func (m *Memory) Flush(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()
	return nil
}
