package cache

import (
	"strings"
	"sync"
	"time"
)

// entry holds a cached hashtag id with its creation timestamp.
type entry struct {
	id        string
	createdAt time.Time
}

// Cache is an in-memory map from hashtag names to their graph API ids.
// Hashtag ids are stable, so caching them saves one upstream call per
// repeated query. Safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache bounded to maxEntries ids, each valid for ttl.
// A background goroutine evicts expired entries every 5 minutes.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
	go c.cleanupLoop()
	return c
}

// Key normalizes a hashtag name for lookup.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "#")))
}

// Get returns the cached id for a hashtag name, if present and fresh.
func (c *Cache) Get(name string) (string, bool) {
	c.mu.RLock()
	e, ok := c.store[Key(name)]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return "", false
	}
	return e.id, true
}

// Set stores a hashtag id. If the cache is at capacity, a random entry is
// evicted to make room (map iteration is random in Go).
func (c *Cache) Set(name, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}
	c.store[Key(name)] = &entry{id: id, createdAt: time.Now()}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
