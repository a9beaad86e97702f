package eventcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/unievents/internal/domain/event"
)

type rangeEntry struct {
	grouped   map[string][]event.Event
	expiresAt time.Time
}

// MemoryCache is an in-memory range cache for tests/dev. Invalidate bumps gen and a Save
// holding an older gen is dropped.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]rangeEntry
	gen     int64
	now     func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]rangeEntry), now: time.Now}
}

// Version returns the current generation.
func (c *MemoryCache) Version(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen, nil
}

// Get implements event.RangeCache.
func (c *MemoryCache) Get(_ context.Context, version int64, from, to string) (map[string][]event.Event, bool, error) {
	key := rangeKey(from, to)
	c.mu.RLock()
	entry, ok := c.entries[key]
	current := c.gen
	c.mu.RUnlock()
	if !ok || version != current {
		return nil, false, nil
	}
	if !entry.expiresAt.IsZero() && entry.expiresAt.Before(c.now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return copyGrouped(entry.grouped), true, nil
}

// Save caches a grouped listing with optional TTL.
func (c *MemoryCache) Save(_ context.Context, version int64, from, to string, grouped map[string][]event.Event, ttl time.Duration) error {
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if version != c.gen {
		return nil
	}
	c.entries[rangeKey(from, to)] = rangeEntry{grouped: copyGrouped(grouped), expiresAt: exp}
	return nil
}

// Invalidate drops every cached range.
func (c *MemoryCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = make(map[string]rangeEntry)
	return nil
}

func rangeKey(from, to string) string {
	return from + ":" + to
}

func copyGrouped(grouped map[string][]event.Event) map[string][]event.Event {
	out := make(map[string][]event.Event, len(grouped))
	for key, events := range grouped {
		out[key] = append([]event.Event(nil), events...)
	}
	return out
}

var _ event.RangeCache = (*MemoryCache)(nil)
