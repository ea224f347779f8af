package catalog

import (
	"sync"

	"reelfeed/models"
)

// ResponseCache memoizes raw provider result lists keyed by the full request
// URL. Entries never expire or get evicted: the cache lives as long as the
// process, which is acceptable for a single browsing session but means a
// long-running deployment should restart periodically or front this with
// bounded caching.
//
// The cache is constructed once and handed to the Client rather than living
// in package state, so tests can assert on it directly.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string][]models.RawItem
}

func NewResponseCache() *ResponseCache {
	return &ResponseCache{entries: make(map[string][]models.RawItem)}
}

// get returns a copy of the cached list. Entries are immutable once written;
// copying keeps callers from editing them in place.
func (c *ResponseCache) get(url string) ([]models.RawItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[url]
	if !ok {
		return nil, false
	}
	out := make([]models.RawItem, len(entry))
	copy(out, entry)
	return out, true
}

// set stores the list under the URL. The first write wins; a concurrent
// duplicate fetch that lost the race does not replace the existing entry.
func (c *ResponseCache) set(url string, items []models.RawItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[url]; ok {
		return
	}
	entry := make([]models.RawItem, len(items))
	copy(entry, items)
	c.entries[url] = entry
}

// Len reports how many distinct URLs have been cached.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
