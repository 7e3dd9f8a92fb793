// package cache provides the in-memory year cache for resolved gallery data
package cache

import (
	"sort"
	"sync"

	"github.com/hollowlog/yearshelf/internal/models"
)

// YearCache maps a year to its fully resolved [models.YearEntry].
//
// Entries are clone-isolated: values passed to Put and returned from Get are
// deep copies, so callers can never mutate cached state through a held
// reference. Only complete years belong here; the fetch coordinator writes
// an entry once all four categories have resolved successfully.
//
// The cache lives for the process lifetime and is constructed per
// application instance rather than held as a package singleton, so tests
// can run against isolated caches.
type YearCache struct {
	mu      sync.RWMutex
	entries map[int]models.YearEntry
}

// New creates an empty YearCache.
func New() *YearCache {
	return &YearCache{entries: make(map[int]models.YearEntry)}
}

// Has reports whether a complete entry exists for the year.
func (c *YearCache) Has(year int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[year]
	return ok
}

// Get returns an independent copy of the year's entry, or nil if absent.
func (c *YearCache) Get(year int) models.YearEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[year]
	if !ok {
		return nil
	}
	return entry.Clone()
}

// Put stores a deep clone of the entry, overwriting any existing entry for
// that year. Missing categories are stored as empty slices so every cached
// entry always carries the full four-key shape.
func (c *YearCache) Put(year int, entry models.YearEntry) {
	cloned := entry.Clone()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[year] = cloned
}

// Remove drops the year's entry, reporting whether one existed.
func (c *YearCache) Remove(year int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[year]
	delete(c.entries, year)
	return ok
}

// Clear drops every entry.
func (c *YearCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]models.YearEntry)
}

// Size returns the number of cached years.
func (c *YearCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Years returns the cached years in ascending order.
func (c *YearCache) Years() []int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]int, 0, len(c.entries))
	for y := range c.entries {
		keys = append(keys, y)
	}
	sort.Ints(keys)
	return keys
}
