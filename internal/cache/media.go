package cache

import (
	"sync"
	"time"
)

// DefaultMediaTTL is how long a resolved media URL stays servable.
const DefaultMediaTTL = 5 * time.Minute

type entry struct {
	url     string
	expires time.Time
}

// MediaCache maps stored image keys to resolved serving URLs with a fixed
// TTL. Expired entries are removed only by SweepExpired, which the host
// process calls from a ticker it owns; the cache itself never starts
// timers, so shutdown needs no extra hooks.
type MediaCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMediaCache(ttl time.Duration) *MediaCache {
	if ttl <= 0 {
		ttl = DefaultMediaTTL
	}
	return &MediaCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached URL for key if present and not yet expired.
// Expired entries are treated as absent but left for SweepExpired.
func (c *MediaCache) Get(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.now().After(e.expires) {
		return "", false
	}
	return e.url, true
}

// Put stores the URL for key with a fresh TTL.
func (c *MediaCache) Put(key, url string) {
	c.mu.Lock()
	c.entries[key] = entry{url: url, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops the given keys, or everything when called with none.
func (c *MediaCache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(keys) == 0 {
		c.entries = make(map[string]entry)
		return
	}
	for _, k := range keys {
		delete(c.entries, k)
	}
}

// SweepExpired removes every expired entry and returns how many were dropped.
func (c *MediaCache) SweepExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	dropped := 0
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
			dropped++
		}
	}
	return dropped
}

// Len reports the number of entries, expired ones included.
func (c *MediaCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
