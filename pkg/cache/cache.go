package cache

import (
	"sync"
	"time"
)

// Item is a cached value with an absolute expiration.
type Item struct {
	Value      interface{}
	Expiration int64
}

// Expired reports whether the item has passed its expiration.
func (item Item) Expired() bool {
	if item.Expiration == 0 {
		return false
	}
	return time.Now().UnixNano() > item.Expiration
}

// Cache is a thread-safe in-memory cache with per-item expiration and a
// bounded item count.
type Cache struct {
	items             map[string]Item
	mu                sync.RWMutex
	defaultExpiration time.Duration
	cleanupInterval   time.Duration
	maxItems          int
}

// Options configures a Cache.
type Options struct {
	DefaultExpiration time.Duration
	CleanupInterval   time.Duration
	MaxItems          int
}

// New creates a cache. A positive cleanup interval starts a background
// sweeper for expired entries.
func New(opts Options) *Cache {
	c := &Cache{
		items:             make(map[string]Item),
		defaultExpiration: opts.DefaultExpiration,
		cleanupInterval:   opts.CleanupInterval,
		maxItems:          opts.MaxItems,
	}
	if c.cleanupInterval > 0 {
		go c.sweep()
	}
	return c
}

// Set stores a value under key with the default expiration.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithExpiration(key, value, c.defaultExpiration)
}

// SetWithExpiration stores a value under key with an explicit TTL.
func (c *Cache) SetWithExpiration(key string, value interface{}, d time.Duration) {
	var exp int64
	if d > 0 {
		exp = time.Now().Add(d).UnixNano()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxItems > 0 && len(c.items) >= c.maxItems {
		if _, exists := c.items[key]; !exists {
			c.evictOldest()
		}
	}

	c.items[key] = Item{Value: value, Expiration: exp}
}

// Get returns the value stored under key, or false if absent or expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()

	if !found || item.Expired() {
		return nil, false
	}
	return item.Value, true
}

// Delete removes the value stored under key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// Len returns the number of items currently stored, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest removes the entry closest to expiration. Caller must hold the
// write lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestExp int64 = 1<<63 - 1

	for key, item := range c.items {
		if item.Expiration != 0 && item.Expiration < oldestExp {
			oldestKey = key
			oldestExp = item.Expiration
		}
	}
	if oldestKey == "" {
		for key := range c.items {
			oldestKey = key
			break
		}
	}
	delete(c.items, oldestKey)
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		for key, item := range c.items {
			if item.Expired() {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
