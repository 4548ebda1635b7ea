package dispatch

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/dcoale/skilld/internal/cache"
)

// Janitor periodically sweeps entries past the cache's 24-hour ceiling.
// Sweeping is maintenance only; reads expire entries lazily on their own.
type Janitor struct {
	c      *cron.Cron
	cache  *cache.Cache
	logger *slog.Logger
}

// NewJanitor schedules a sweep on the given cron expression ("@every 1h" style
// descriptors included).
func NewJanitor(ca *cache.Cache, schedule string, logger *slog.Logger) (*Janitor, error) {
	j := &Janitor{
		c:      cron.New(),
		cache:  ca,
		logger: logger,
	}
	if _, err := j.c.AddFunc(schedule, j.sweep); err != nil {
		return nil, fmt.Errorf("parse sweep schedule %q: %w", schedule, err)
	}
	return j, nil
}

// Start begins running sweeps in the background.
func (j *Janitor) Start() {
	j.c.Start()
}

// Stop halts the schedule and waits for an in-flight sweep to finish.
func (j *Janitor) Stop() {
	<-j.c.Stop().Done()
}

func (j *Janitor) sweep() {
	removed := j.cache.Sweep()
	if removed > 0 {
		j.logger.Info("cache sweep", "removed", removed, "remaining", j.cache.Len())
	}
}
