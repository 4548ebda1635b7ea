// Package dispatch runs skill invocations with a time budget, a shared
// result cache, and an ordered fallback chain.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dcoale/skilld/internal/cache"
	"github.com/dcoale/skilld/internal/model"
	"github.com/dcoale/skilld/internal/skill"
	"github.com/dcoale/skilld/internal/stats"
)

// DefaultTimeout applies to data types absent from the timeout table.
const DefaultTimeout = 10 * time.Second

// timeoutTable maps data-type classifications to their execution budget.
var timeoutTable = map[string]time.Duration{
	model.DataLocal:     2 * time.Second,
	model.DataFile:      3 * time.Second,
	model.DataWebFetch:  10 * time.Second,
	model.DataWebSearch: 15 * time.Second,
	model.DataBrowser:   30 * time.Second,
	model.DataAI:        60 * time.Second,
}

// TimeoutFor returns the execution budget for a data-type classification.
func TimeoutFor(dataType string) time.Duration {
	if d, ok := timeoutTable[dataType]; ok {
		return d
	}
	return DefaultTimeout
}

// Executor runs a single skill invocation under a deadline, consulting the
// cache first and populating it on success.
//
// The deadline bounds the caller's wait, not the work itself: the invocation
// runs in its own goroutine, and when the budget elapses the caller is
// released while the goroutine may run to completion in the background with
// no further observable effect. True interruption of in-flight work depends
// on the skill honoring the context it is handed.
type Executor struct {
	cache  *cache.Cache
	stats  *stats.Collector
	logger *slog.Logger
}

// NewExecutor creates an executor over the given cache and stats collector.
func NewExecutor(c *cache.Cache, st *stats.Collector, logger *slog.Logger) *Executor {
	return &Executor{
		cache:  c,
		stats:  st,
		logger: logger,
	}
}

// Cache returns the executor's result cache.
func (e *Executor) Cache() *cache.Cache {
	return e.cache
}

type invokeOutcome struct {
	data any
	err  error
}

// Execute runs one skill invocation. A timeout of zero selects the budget
// for the skill's data type. Failures of every kind come back as a Result
// with Success=false; nothing escapes as a panic or program exit.
func (e *Executor) Execute(ctx context.Context, name string, s skill.Skill, params skill.Params, dataType string, timeout time.Duration) model.Result {
	start := time.Now()

	if data, ok := e.cache.Get(name, params, dataType); ok {
		e.stats.CacheHit()
		return model.Result{
			Success:    true,
			Skill:      name,
			Data:       data,
			Origin:     model.OriginCache,
			Cost:       0,
			DurationMS: int(time.Since(start).Milliseconds()),
		}
	}

	if timeout <= 0 {
		timeout = TimeoutFor(dataType)
	}

	invokeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan invokeOutcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				e.logger.Error("skill panicked", "skill", name, "panic", r)
				done <- invokeOutcome{err: fmt.Errorf("skill panic: %v", r)}
			}
		}()
		data, err := s.Invoke(invokeCtx, params)
		done <- invokeOutcome{data: data, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			e.stats.Error()
			return e.failed(name, start, timeout, invokeCtx, out.err.Error())
		}
		e.cache.Set(name, params, out.data)
		e.stats.LiveCall()
		return model.Result{
			Success:    true,
			Skill:      name,
			Data:       out.data,
			Origin:     model.OriginLive,
			Cost:       1,
			DurationMS: int(time.Since(start).Milliseconds()),
		}
	case <-invokeCtx.Done():
		e.stats.Error()
		return e.failed(name, start, timeout, invokeCtx, invokeCtx.Err().Error())
	}
}

// failed builds a failure Result, normalizing deadline expiry to the
// canonical timeout message regardless of how the skill surfaced it.
func (e *Executor) failed(name string, start time.Time, timeout time.Duration, invokeCtx context.Context, errMsg string) model.Result {
	if errors.Is(invokeCtx.Err(), context.DeadlineExceeded) {
		errMsg = fmt.Sprintf("Timeout after %gs", timeout.Seconds())
	}
	return model.Result{
		Success:    false,
		Skill:      name,
		Error:      errMsg,
		Cost:       1,
		DurationMS: int(time.Since(start).Milliseconds()),
	}
}
