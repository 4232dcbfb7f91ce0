package maps

import (
	"sync"
	"time"
)

// ttlCache is a small thread-safe coordinate cache with per-item expiry.
// Geocoding the same address twice in quick succession is common within a
// conversation (route origin, then AQI lookup), and the provider rate limit
// makes repeat calls expensive.
type ttlCache struct {
	mu    sync.Mutex
	items map[string]cacheItem
	ttl   time.Duration
	max   int
}

type cacheItem struct {
	value   cachedLocation
	expires time.Time
}

type cachedLocation struct {
	lat float64
	lng float64
}

func newTTLCache(ttl time.Duration, max int) *ttlCache {
	return &ttlCache{
		items: make(map[string]cacheItem),
		ttl:   ttl,
		max:   max,
	}
}

func (c *ttlCache) get(key string) (cachedLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return cachedLocation{}, false
	}
	if time.Now().After(item.expires) {
		delete(c.items, key)
		return cachedLocation{}, false
	}
	return item.value, true
}

func (c *ttlCache) set(key string, value cachedLocation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) >= c.max {
		c.evictLocked()
	}
	c.items[key] = cacheItem{value: value, expires: time.Now().Add(c.ttl)}
}

// evictLocked drops expired entries, and if none were expired removes the
// entry expiring soonest. Caller must hold the lock.
func (c *ttlCache) evictLocked() {
	now := time.Now()
	oldestKey := ""
	var oldest time.Time

	for k, v := range c.items {
		if now.After(v.expires) {
			delete(c.items, k)
			continue
		}
		if oldestKey == "" || v.expires.Before(oldest) {
			oldestKey = k
			oldest = v.expires
		}
	}

	if len(c.items) >= c.max && oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
