package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestCache(ttl time.Duration) (*MediaCache, *time.Time) {
	c := NewMediaCache(ttl)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestMediaCachePutGet(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Put("bulletin.jpg", "https://cdn.example.com/uploads/bulletin.jpg")
	url, ok := c.Get("bulletin.jpg")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/uploads/bulletin.jpg", url)

	_, ok = c.Get("missing.jpg")
	assert.False(t, ok)
}

func TestMediaCacheExpiry(t *testing.T) {
	c, now := newTestCache(time.Minute)
	c.Put("a.jpg", "url-a")

	*now = now.Add(59 * time.Second)
	_, ok := c.Get("a.jpg")
	assert.True(t, ok)

	// expired entries read as absent but stay until swept
	*now = now.Add(2 * time.Second)
	_, ok = c.Get("a.jpg")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, 1, c.SweepExpired())
	assert.Equal(t, 0, c.Len())
}

func TestMediaCacheSweepKeepsLiveEntries(t *testing.T) {
	c, now := newTestCache(time.Minute)
	c.Put("old.jpg", "url-old")

	*now = now.Add(30 * time.Second)
	c.Put("fresh.jpg", "url-fresh")

	*now = now.Add(45 * time.Second)
	assert.Equal(t, 1, c.SweepExpired())

	_, ok := c.Get("fresh.jpg")
	assert.True(t, ok)
	_, ok = c.Get("old.jpg")
	assert.False(t, ok)
}

func TestMediaCacheInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	c.Put("a.jpg", "url-a")
	c.Put("b.jpg", "url-b")
	c.Put("c.jpg", "url-c")

	c.Invalidate("a.jpg")
	_, ok := c.Get("a.jpg")
	assert.False(t, ok)
	assert.Equal(t, 2, c.Len())

	// no keys means everything
	c.Invalidate()
	assert.Equal(t, 0, c.Len())
}

func TestMediaCachePutRefreshesTTL(t *testing.T) {
	c, now := newTestCache(time.Minute)
	c.Put("a.jpg", "url-a")

	*now = now.Add(45 * time.Second)
	c.Put("a.jpg", "url-a2")

	*now = now.Add(30 * time.Second)
	url, ok := c.Get("a.jpg")
	assert.True(t, ok)
	assert.Equal(t, "url-a2", url)
}

func TestMediaCacheDefaultTTL(t *testing.T) {
	c := NewMediaCache(0)
	assert.Equal(t, DefaultMediaTTL, c.ttl)
}
