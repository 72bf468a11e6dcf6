package store

import (
	"context"
	"sync"
	"time"

	"safeplate/internal/domain/entity"
)

type memoryEntry struct {
	result    *entity.Result
	createdAt time.Time
}

// MemoryCache is a process-wide, mutex-guarded fingerprint cache. Entries
// expire after the TTL and are removed on lookup; there is no eviction
// beyond that, so key growth is bounded only by request variety.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return NewMemoryCacheWithClock(ttl, time.Now)
}

// NewMemoryCacheWithClock injects the clock so expiry can be tested without
// sleeping.
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryCache) Lookup(_ context.Context, fingerprint string) (*entity.Result, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[fingerprint]
	if !ok {
		return nil, false, nil
	}
	if c.now().Sub(e.createdAt) >= c.ttl {
		delete(c.entries, fingerprint)
		return nil, false, nil
	}
	return e.result, true, nil
}

func (c *MemoryCache) Store(_ context.Context, fingerprint string, res *entity.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[fingerprint] = memoryEntry{result: res, createdAt: c.now()}
	return nil
}

// Len reports the number of entries currently held, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
