package cache

import (
	"sync"
	"time"
)

type ttlEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is a thread-safe map whose entries expire a fixed duration
// after they are written. Expired entries are removed on access; Sweep
// removes the rest in bulk.
type TTLCache[K comparable, V any] struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[K]ttlEntry[V]

	// now is swappable for tests.
	now func() time.Time
}

// NewTTL creates a TTL cache. The ttl must be positive, otherwise it panics.
func NewTTL[K comparable, V any](ttl time.Duration) *TTLCache[K, V] {
	if ttl <= 0 {
		panic("cache: ttl must be positive")
	}
	return &TTLCache[K, V]{
		ttl:   ttl,
		items: make(map[K]ttlEntry[V]),
		now:   time.Now,
	}
}

// Get returns the value for key if present and not expired. An expired
// entry is deleted on the spot.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		var zero V
		return zero, false
	}

	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// refreshed the entry since the read above.
		if current, still := c.items[key]; still && c.now().After(current.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()

		var zero V
		return zero, false
	}

	return entry.value, true
}

// Set stores value under key with a fresh TTL window. Concurrent writers
// for the same key race benignly; last writer wins.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	c.items[key] = ttlEntry[V]{
		value:     value,
		expiresAt: c.now().Add(c.ttl),
	}
	c.mu.Unlock()
}

// Delete removes key from the cache if present.
func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of entries currently stored, expired or not.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Sweep removes every expired entry and reports how many were evicted.
func (c *TTLCache[K, V]) Sweep() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	evicted := 0
	for key, entry := range c.items {
		if now.After(entry.expiresAt) {
			delete(c.items, key)
			evicted++
		}
	}
	return evicted
}

// StartSweeper runs Sweep every interval until stop is closed. It is
// optional; lazy eviction alone keeps reads correct, the sweeper only
// bounds memory held by keys that are never read again.
func (c *TTLCache[K, V]) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
