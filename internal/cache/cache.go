// Package cache implements the shared result cache for skill dispatch.
//
// Expiry is two-tier by design: a read that finds an entry older than its
// data-type TTL deletes it lazily, while Sweep removes entries older than a
// fixed 24-hour ceiling regardless of TTL. An entry that is logically expired
// for reads may therefore still occupy storage until the next sweep.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dcoale/skilld/internal/model"
)

// DefaultTTL applies to data types absent from the TTL table.
const DefaultTTL = 300 * time.Second

// maxEntryAge is the hard ceiling enforced by Sweep, independent of
// per-data-type TTLs.
const maxEntryAge = 24 * time.Hour

// ttlTable maps data-type classifications to their time-to-live.
var ttlTable = map[string]time.Duration{
	model.DataStockPrice:          60 * time.Second,
	model.DataStockInfo:           3600 * time.Second,
	model.DataWebPage:             300 * time.Second,
	model.DataNews:                600 * time.Second,
	model.DataSearchResult:        1800 * time.Second,
	model.DataAnalysisReport:      86400 * time.Second,
	model.DataTechnicalIndicators: 300 * time.Second,
}

// TTLFor returns the time-to-live for a data-type classification.
func TTLFor(dataType string) time.Duration {
	if ttl, ok := ttlTable[dataType]; ok {
		return ttl
	}
	return DefaultTTL
}

type entry struct {
	data     any
	storedAt time.Time
}

// Cache is a fingerprint-keyed store of prior skill results. A single mutex
// guards the whole backing map; there is intentionally no per-key locking and
// no single-flight, so two callers racing on the same miss may both perform
// the live invocation, last write wins.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry

	// now is swappable so tests can simulate the passage of time.
	now func() time.Time
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Fingerprint derives the deterministic cache key for a skill invocation.
// Params are serialized as JSON with sorted keys before hashing, so two
// semantically equal parameter maps always produce the same fingerprint
// regardless of insertion order.
func Fingerprint(name string, params map[string]any) string {
	// encoding/json sorts map keys, which gives us the canonical form.
	encoded, err := json.Marshal(params)
	if err != nil {
		// Params that defeat JSON encoding still need a stable key.
		encoded = []byte(fmt.Sprintf("%v", params))
	}
	sum := md5.Sum([]byte(name + ":" + string(encoded)))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached payload for the invocation if one exists and is
// younger than the data type's TTL. An entry found past its TTL is deleted
// as a side effect and reported as absent.
func (c *Cache) Get(name string, params map[string]any, dataType string) (any, bool) {
	key := Fingerprint(name, params)
	ttl := TTLFor(dataType)

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.data, true
}

// Set stores the payload under the invocation's fingerprint, overwriting any
// prior entry.
func (c *Cache) Set(name string, params map[string]any, data any) {
	key := Fingerprint(name, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, storedAt: c.now()}
}

// Contains reports whether an entry for the invocation is physically present,
// ignoring TTLs. It exists for maintenance and tests, not the dispatch path.
func (c *Cache) Contains(name string, params map[string]any) bool {
	key := Fingerprint(name, params)

	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Sweep removes every entry older than the 24-hour ceiling and returns the
// number removed. Per-data-type TTLs are not consulted here; lazy expiry on
// Get handles those.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.storedAt) > maxEntryAge {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of physically present entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
