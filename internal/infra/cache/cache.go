// Package cache provides a small in-memory TTL cache, used to avoid
// refetching slow-changing rows (business profiles, product catalogs)
// on every report request.
package cache

import (
	"sync"
	"time"
)

type item[T any] struct {
	value    T
	deadline time.Time
}

// InMemory is a thread-safe in-memory cache with a fixed TTL per entry.
type InMemory[T any] struct {
	mu   sync.RWMutex
	data map[string]item[T]
	ttl  time.Duration
	stop chan struct{}
}

// New creates a cache and starts its background janitor.
func New[T any](ttl time.Duration) *InMemory[T] {
	c := &InMemory[T]{
		data: make(map[string]item[T]),
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.janitor()
	return c
}

// Get retrieves a value. The second return is false when the key is
// missing or its entry has expired.
func (c *InMemory[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, ok := c.data[key]
	if !ok || time.Now().After(it.deadline) {
		var zero T
		return zero, false
	}
	return it.value, true
}

// Set stores a value with the configured TTL.
func (c *InMemory[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = item[T]{value: value, deadline: time.Now().Add(c.ttl)}
}

// Delete removes a key.
func (c *InMemory[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Close stops the background janitor.
func (c *InMemory[T]) Close() {
	close(c.stop)
}

func (c *InMemory[T]) janitor() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, it := range c.data {
				if now.After(it.deadline) {
					delete(c.data, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
