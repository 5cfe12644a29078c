package engine

import (
	"sync"
	"time"

	"strata-hq/strata/pkg/typedesc"
)

// cacheKey identifies a memoized verdict: the value's shape, the policy in
// force, and the expression's fingerprint. All components compare by
// value, so the key is usable directly in a map.
type cacheKey struct {
	shape  string
	policy typedesc.Policy
	expr   uint64
}

// cacheEntry holds one memoized verdict. The sync.Once gives the
// compute-once guarantee: concurrent cold-misses on the same key coalesce
// into a single computation, and readers never observe a partially-written
// verdict.
type cacheEntry struct {
	once    sync.Once
	verdict Verdict

	// lastUsed drives LRU eviction; guarded by the cache mutex.
	lastUsed time.Time
}

// Cache memoizes verdicts per (shape, policy, expression). Entries are
// never mutated in place; eviction under memory pressure simply drops the
// entry, and a later check recomputes a fresh one. Invalidation is never
// required for correctness: a verdict is a pure function of its key.
type Cache struct {
	mu         sync.Mutex
	entries    map[cacheKey]*cacheEntry
	maxEntries int

	// onEvict, when set, is called once per evicted entry, outside any
	// caller-visible state transition.
	onEvict func()
}

// DefaultCacheSize bounds the cache when no explicit size is configured.
const DefaultCacheSize = 4096

// NewCache creates a verdict cache holding at most maxEntries entries.
// Sizes below one fall back to DefaultCacheSize.
func NewCache(maxEntries int) *Cache {
	if maxEntries < 1 {
		maxEntries = DefaultCacheSize
	}
	return &Cache{
		entries:    make(map[cacheKey]*cacheEntry),
		maxEntries: maxEntries,
	}
}

// getOrCompute returns the memoized verdict for the key, computing it at
// most once under concurrent access. The hit result reports whether the
// verdict was already present.
func (c *Cache) getOrCompute(key cacheKey, compute func() Verdict) (Verdict, bool) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	entry.lastUsed = time.Now()
	c.mu.Unlock()

	computed := false
	entry.once.Do(func() {
		entry.verdict = compute()
		computed = true
	})
	return entry.verdict, !computed
}

// Len returns the current number of cached verdicts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]*cacheEntry)
}

// evictOldestLocked drops the least recently used entry to make room.
// Caller must hold the mutex. An in-flight computation on the evicted
// entry still completes against its own entry object; the eviction only
// unlinks it from the map.
func (c *Cache) evictOldestLocked() {
	var (
		oldestKey  cacheKey
		oldestTime time.Time
		found      bool
	)
	for key, entry := range c.entries {
		if !found || entry.lastUsed.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.lastUsed
			found = true
		}
	}
	if found {
		delete(c.entries, oldestKey)
		if c.onEvict != nil {
			c.onEvict()
		}
	}
}
