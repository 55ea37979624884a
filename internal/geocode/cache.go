package geocode

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultTTL matches the one-hour window the site has always used for
// geocode payloads.
const DefaultTTL = time.Hour

type entry struct {
	payload  json.RawMessage
	storedAt time.Time
}

// Cache memoizes raw geocoder payloads keyed by the request's literal
// coordinate strings. Entries past the TTL are treated as absent and
// lazily overwritten on the next store; nothing is ever swept, so the map
// grows for the life of the process. There is no single-flight guarantee:
// two concurrent misses for the same key may both reach upstream, and the
// last writer wins.
type Cache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry
}

// NewCache creates a cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return NewCacheWithClock(ttl, time.Now)
}

// NewCacheWithClock creates a cache with an injected clock so TTL behavior
// can be tested deterministically.
func NewCacheWithClock(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry),
	}
}

// Get returns the cached payload for key, or ok=false when the key is
// missing or its entry is older than the TTL.
func (c *Cache) Get(key string) (json.RawMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.entries[key]
	if !exists || c.now().Sub(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.payload, true
}

// Put stores the payload under key, replacing any prior entry.
func (c *Cache) Put(key string, payload json.RawMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{payload: payload, storedAt: c.now()}
}

// Len returns the number of entries, stale ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
