package services

import "sync"

// ViewCache memoizes derived views (standings, team stats) keyed on a
// monotonically increasing data version. Every write to picks or winners
// bumps the version, which implicitly invalidates every cached entry; there
// is no time-based staleness window.
type ViewCache struct {
	mu      sync.Mutex
	version int64
	entries map[string]cacheEntry
}

type cacheEntry struct {
	version int64
	value   interface{}
}

// NewViewCache creates an empty cache at version zero
func NewViewCache() *ViewCache {
	return &ViewCache{entries: make(map[string]cacheEntry)}
}

// Version returns the current data version
func (c *ViewCache) Version() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Bump advances the data version, invalidating all cached views. Callers
// must invoke this after every picks or winners write.
func (c *ViewCache) Bump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.version++
	// Entries from older versions can never be served again; drop them.
	for key, entry := range c.entries {
		if entry.version != c.version {
			delete(c.entries, key)
		}
	}
}

// Get returns the cached value for key if it was computed at the current
// data version. The returned version identifies the data the lookup ran
// against; a caller recomputing after a miss must hand it back to Put.
func (c *ViewCache) Get(key string) (interface{}, int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || entry.version != c.version {
		return nil, c.version, false
	}
	return entry.value, c.version, true
}

// Put stores a value computed at the given data version. A value whose
// computation was overtaken by a Bump is discarded: storing it under the
// live version would resurrect a view of the pre-write data.
func (c *ViewCache) Put(key string, value interface{}, version int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.version {
		return
	}
	c.entries[key] = cacheEntry{version: version, value: value}
}
