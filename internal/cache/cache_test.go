package cache

import (
	"testing"
	"time"

	"github.com/dcoale/skilld/internal/model"
)

// newTestCache returns a cache with a manually advanced clock.
func newTestCache() (*Cache, *time.Time) {
	c := New()
	now := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestGetAfterSetRoundTrip(t *testing.T) {
	c, _ := newTestCache()
	params := map[string]any{"symbol": "600519"}

	c.Set("sina_quote", params, "payload-1")

	got, ok := c.Get("sina_quote", params, model.DataStockPrice)
	if !ok {
		t.Fatal("expected cache hit immediately after set")
	}
	if got != "payload-1" {
		t.Errorf("payload = %v, want payload-1", got)
	}
}

func TestGetMissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache()

	if _, ok := c.Get("sina_quote", map[string]any{"symbol": "000001"}, model.DataStockPrice); ok {
		t.Error("expected miss for never-written key")
	}
}

func TestLazyExpiryDeletesEntry(t *testing.T) {
	c, now := newTestCache()
	params := map[string]any{"symbol": "600519"}

	c.Set("sina_quote", params, "stale")
	*now = now.Add(61 * time.Second) // stock_price TTL is 60s

	if _, ok := c.Get("sina_quote", params, model.DataStockPrice); ok {
		t.Fatal("expected miss past TTL")
	}
	if c.Contains("sina_quote", params) {
		t.Error("expired entry should be deleted by the read")
	}
}

func TestDefaultTTLForUnknownDataType(t *testing.T) {
	c, now := newTestCache()
	params := map[string]any{"q": "golang"}

	c.Set("search", params, "results")

	*now = now.Add(299 * time.Second)
	if _, ok := c.Get("search", params, "no_such_type"); !ok {
		t.Error("expected hit just under the 300s default TTL")
	}

	*now = now.Add(2 * time.Second)
	if _, ok := c.Get("search", params, "no_such_type"); ok {
		t.Error("expected miss past the 300s default TTL")
	}
}

func TestSetOverwritesPriorEntry(t *testing.T) {
	c, _ := newTestCache()
	params := map[string]any{"url": "https://example.com"}

	c.Set("web_fetch", params, "old")
	c.Set("web_fetch", params, "new")

	got, ok := c.Get("web_fetch", params, model.DataWebPage)
	if !ok || got != "new" {
		t.Errorf("got (%v, %v), want (new, true)", got, ok)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("priceLookup", map[string]any{"symbol": "600519"})
	b := Fingerprint("priceLookup", map[string]any{"symbol": "600519"})
	if a != b {
		t.Errorf("fingerprints differ: %s vs %s", a, b)
	}
}

func TestFingerprintIgnoresKeyOrder(t *testing.T) {
	// Maps have no insertion order in Go, but build them in different
	// textual orders anyway and confirm canonical serialization.
	p1 := map[string]any{"symbol": "600519", "source": "sina"}
	p2 := map[string]any{"source": "sina", "symbol": "600519"}

	if Fingerprint("quote", p1) != Fingerprint("quote", p2) {
		t.Error("fingerprint should not depend on key order")
	}
}

func TestFingerprintVariesByNameAndParams(t *testing.T) {
	base := Fingerprint("quote", map[string]any{"symbol": "600519"})

	if Fingerprint("other", map[string]any{"symbol": "600519"}) == base {
		t.Error("different skill names should produce different fingerprints")
	}
	if Fingerprint("quote", map[string]any{"symbol": "000001"}) == base {
		t.Error("different params should produce different fingerprints")
	}
}

func TestSweepRemovesOnlyEntriesPastCeiling(t *testing.T) {
	c, now := newTestCache()
	old := map[string]any{"symbol": "600519"}
	fresh := map[string]any{"symbol": "000001"}

	c.Set("quote", old, "ancient")
	*now = now.Add(25 * time.Hour)
	c.Set("quote", fresh, "recent")

	if removed := c.Sweep(); removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if c.Contains("quote", old) {
		t.Error("entry past the 24h ceiling should be swept")
	}
	if !c.Contains("quote", fresh) {
		t.Error("fresh entry should survive the sweep")
	}
}

// A logically expired entry must remain physically present until either a
// read expires it or the entry crosses the 24h sweep ceiling. The two
// mechanisms are independent.
func TestTwoTierExpiry(t *testing.T) {
	c, now := newTestCache()
	params := map[string]any{"symbol": "600519"}

	c.Set("quote", params, "stale")
	*now = now.Add(61 * time.Second) // past stock_price TTL, far under 24h

	if removed := c.Sweep(); removed != 0 {
		t.Errorf("sweep removed %d entries, want 0", removed)
	}
	if !c.Contains("quote", params) {
		t.Fatal("logically expired entry should survive a sweep under the ceiling")
	}

	if _, ok := c.Get("quote", params, model.DataStockPrice); ok {
		t.Error("read at TTL+1s should miss")
	}
	if c.Contains("quote", params) {
		t.Error("read past TTL should have deleted the entry")
	}
}

func TestLenCountsPhysicalEntries(t *testing.T) {
	c, now := newTestCache()

	c.Set("quote", map[string]any{"symbol": "600519"}, "v")
	c.Set("quote", map[string]any{"symbol": "000001"}, "v")

	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}

	// Logical expiry does not change physical size until a read or sweep.
	*now = now.Add(2 * time.Hour)
	if c.Len() != 2 {
		t.Errorf("len after logical expiry = %d, want 2", c.Len())
	}
}
