package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"tripforge/pkg/observability"
)

// sweepThreshold bounds the map before expired entries get collected.
const sweepThreshold = 1000

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is the zero-dependency backend: an RWMutex map with lazy
// expiry and a size-triggered sweep. Values round-trip through JSON so both
// backends behave identically.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
	}
}

func (m *MemoryCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(e.payload, dst)
}

func (m *MemoryCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = memoryEntry{payload: b, expiresAt: time.Now().Add(ttl)}
	observability.ObserveCache("memory", "set")

	if len(m.data) > sweepThreshold {
		now := time.Now()
		for k, e := range m.data {
			if now.After(e.expiresAt) {
				delete(m.data, k)
			}
		}
	}
	return nil
}

func (m *MemoryCache) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
