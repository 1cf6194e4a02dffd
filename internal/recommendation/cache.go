package recommendation

import (
	"sync"
	"time"
)

// DefaultTTL is how long a cached recommendation set stays fresh.
const DefaultTTL = 72 * time.Hour

// Entry is one cached recommendation set with its fetch timestamp.
type Entry struct {
	Data      *Set      `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Cache stores recommendation sets keyed by preset ID. Reads are pure:
// Get never checks the TTL, that is the caller's job via IsExpired. All
// mutations go through a single mutex so concurrent refetch completions
// cannot lose updates. Writes are last-write-wins.
type Cache struct {
	mu      sync.RWMutex
	entries map[int64]*Entry
	ttl     time.Duration
}

// NewCache creates a cache with the given TTL (DefaultTTL when zero).
func NewCache(ttl time.Duration) *Cache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries: make(map[int64]*Entry),
		ttl:     ttl,
	}
}

// TTL returns the configured time-to-live.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached entry for a preset, without side effects and
// without checking expiry.
func (c *Cache) Get(presetID int64) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[presetID]
	return e, ok
}

// IsExpired reports whether an entry's age exceeds the TTL at now.
func (c *Cache) IsExpired(e *Entry, now time.Time) bool {
	return now.Sub(e.FetchedAt) > c.ttl
}

// Put stores a recommendation set unconditionally, overwriting any
// existing entry for the preset.
func (c *Cache) Put(presetID int64, data *Set, fetchedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[presetID] = &Entry{Data: data, FetchedAt: fetchedAt}
}

// Invalidate removes the entry for a preset. It does not trigger a
// refetch; that is the orchestrator's job.
func (c *Cache) Invalidate(presetID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, presetID)
}

// InvalidateAll clears the whole cache. Used on logout and on wholesale
// snapshot expiry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int64]*Entry)
}

// SweepExpired removes all entries older than the TTL and returns how
// many were dropped.
func (c *Cache) SweepExpired(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	dropped := 0
	for id, e := range c.entries {
		if now.Sub(e.FetchedAt) > c.ttl {
			delete(c.entries, id)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// Export returns a copy of the cache contents, keyed by preset ID.
// Used by the snapshot store to persist sessions.
func (c *Cache) Export() map[int64]Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[int64]Entry, len(c.entries))
	for id, e := range c.entries {
		out[id] = *e
	}
	return out
}

// Restore loads previously exported entries into the cache, overwriting
// entries for the same preset IDs.
func (c *Cache) Restore(entries map[int64]Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, e := range entries {
		cpy := e
		c.entries[id] = &cpy
	}
}
