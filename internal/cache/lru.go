// Package cache contains in-memory caches
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// LRU represents a typed LRU cache that can be used concurrently
type LRU[K comparable, V any] struct {
	cache *lru.Cache
	mu    sync.Mutex
}

// NewLRU creates a new LRU Cache holding at most maxEntries items.
func NewLRU[K comparable, V any](maxEntries int) (*LRU[K, V], error) {
	c, err := lru.New(maxEntries)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{
		cache: c,
	}, nil
}

// Get looks up a key's value from the cache.
func (c *LRU[K, V]) Get(key K) (value V, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.cache.Get(key)
	if !ok {
		return value, false
	}
	value, ok = raw.(V)
	return value, ok
}

// Add adds a value to the cache.
func (c *LRU[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Add(key, value)
}

// Clear purges all stored items from the cache.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Purge()
}

// Len returns the number of items in the cache.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.cache.Len()
}
