package stats

import (
	"sync"
	"testing"
)

func TestSnapshotReflectsCounters(t *testing.T) {
	c := NewCollector()

	c.LiveCall()
	c.LiveCall()
	c.CacheHit()
	c.FallbackTrigger()
	c.Error()

	snap := c.Snapshot(7, 4)
	if snap.TotalCalls != 2 {
		t.Errorf("TotalCalls = %d, want 2", snap.TotalCalls)
	}
	if snap.CacheHits != 1 {
		t.Errorf("CacheHits = %d, want 1", snap.CacheHits)
	}
	if snap.FallbackTriggers != 1 {
		t.Errorf("FallbackTriggers = %d, want 1", snap.FallbackTriggers)
	}
	if snap.Errors != 1 {
		t.Errorf("Errors = %d, want 1", snap.Errors)
	}
	if snap.CacheSize != 7 || snap.RegisteredSkills != 4 {
		t.Errorf("sizes = %d, %d, want 7, 4", snap.CacheSize, snap.RegisteredSkills)
	}
}

func TestCollectorsAreIndependent(t *testing.T) {
	a := NewCollector()
	b := NewCollector()

	a.LiveCall()

	if got := b.Snapshot(0, 0).TotalCalls; got != 0 {
		t.Errorf("b.TotalCalls = %d, want 0", got)
	}
}

func TestConcurrentIncrementsAreNotLost(t *testing.T) {
	c := NewCollector()
	const workers = 8
	const perWorker = 1000

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				c.LiveCall()
				c.Error()
			}
		}()
	}
	wg.Wait()

	snap := c.Snapshot(0, 0)
	if snap.TotalCalls != workers*perWorker {
		t.Errorf("TotalCalls = %d, want %d", snap.TotalCalls, workers*perWorker)
	}
	if snap.Errors != workers*perWorker {
		t.Errorf("Errors = %d, want %d", snap.Errors, workers*perWorker)
	}
}
