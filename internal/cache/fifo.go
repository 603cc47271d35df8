// Package cache provides a bounded key-value store with FIFO eviction,
// used to memoize expensive derivations and avoid re-fetching.
package cache

import (
	"sync"

	"github.com/vietddude/steady/internal/telemetry"
)

// Cache holds at most maxSize entries. Insertion order is the eviction
// order: when full, the oldest-inserted key is dropped to make room. Reads
// never reorder entries and updating an existing key keeps its original
// queue position, so this is FIFO, not LRU.
//
// Each call site owns its own instance; there is no package-level cache.
type Cache[K comparable, V any] struct {
	maxSize int

	mu      sync.Mutex
	entries map[K]V
	order   []K // insertion order, oldest first
}

// New creates a cache bounded to maxSize entries. Capacity below one is
// clamped to one so every operation stays total.
func New[K comparable, V any](maxSize int) *Cache[K, V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Cache[K, V]{
		maxSize: maxSize,
		entries: make(map[K]V, maxSize),
	}
}

// Get returns the value stored under key. No side effects on order.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.entries[key]
	if ok {
		telemetry.CacheHits.Inc()
	} else {
		telemetry.CacheMisses.Inc()
	}
	return value, ok
}

// Set stores value under key, evicting the oldest-inserted entry first when
// at capacity. Setting an existing key only replaces its value.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = value
		return
	}

	if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		telemetry.CacheEvictions.Inc()
	}

	c.entries[key] = value
	c.order = append(c.order, key)
}

// Has reports whether key is present.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of stored entries, always <= maxSize.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear empties the cache unconditionally.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]V, c.maxSize)
	c.order = c.order[:0]
}
