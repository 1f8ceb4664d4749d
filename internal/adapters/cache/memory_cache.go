package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is a bounded in-process cache with least-recently-used
// eviction and a per-entry TTL. It is safe for concurrent use.
type MemoryCache[V any] struct {
	name string
	lru  *expirable.LRU[string, V]
}

// NewMemoryCache returns a cache holding at most size entries, each
// expiring ttl after it was written. name labels cache metrics.
func NewMemoryCache[V any](name string, size int, ttl time.Duration) *MemoryCache[V] {
	return &MemoryCache[V]{
		name: name,
		lru:  expirable.NewLRU[string, V](size, nil, ttl),
	}
}

func (m *MemoryCache[V]) Get(_ context.Context, key string) (V, bool, error) {
	v, ok := m.lru.Get(key)
	recordLookup(m.name, ok)
	return v, ok, nil
}

func (m *MemoryCache[V]) Put(_ context.Context, key string, value V) error {
	m.lru.Add(key, value)
	return nil
}

// Len reports the number of live entries.
func (m *MemoryCache[V]) Len() int { return m.lru.Len() }
