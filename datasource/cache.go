package datasource

import (
	"sync"
	"time"
)

// cacheEntry stores one fetched payload with its fetch time.
type cacheEntry struct {
	data any
	at   time.Time
}

// dataCache provides concurrent-safe storage for fetched payloads, keyed by
// source id. Entries are written on every successful fetch but consulted
// only for api sources with caching enabled.
type dataCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newDataCache() *dataCache {
	return &dataCache{entries: make(map[string]cacheEntry)}
}

// get retrieves an entry with a read lock. Returns the entry and a hit flag.
func (c *dataCache) get(id string) (cacheEntry, bool) {
	c.mu.RLock()
	e, ok := c.entries[id]
	c.mu.RUnlock()
	return e, ok
}

// set stores an entry stamped with the current time.
func (c *dataCache) set(id string, data any) {
	c.mu.Lock()
	c.entries[id] = cacheEntry{data: data, at: time.Now()}
	c.mu.Unlock()
}

// evict removes the entry for one source, if present.
func (c *dataCache) evict(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// clear removes every entry.
func (c *dataCache) clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
