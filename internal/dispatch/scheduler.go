package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/dcoale/skilld/internal/cache"
	"github.com/dcoale/skilld/internal/model"
	"github.com/dcoale/skilld/internal/skill"
	"github.com/dcoale/skilld/internal/stats"
	"github.com/dcoale/skilld/internal/store"
)

// Route binds a logical task name to a primary skill and its fallback chain.
type Route struct {
	Primary   string   `json:"primary"`
	Fallbacks []string `json:"fallbacks"`
}

// RouteInfo pairs a task name with its route for API listings.
type RouteInfo struct {
	Task  string `json:"task"`
	Route Route  `json:"route"`
}

// Scheduler resolves skill names against the registry and drives execution
// through the executor until one attempt succeeds or the chain is exhausted.
type Scheduler struct {
	registry *skill.Registry
	exec     *Executor
	stats    *stats.Collector
	history  store.Store
	logger   *slog.Logger

	mu     sync.RWMutex
	routes map[string]Route
}

// NewScheduler creates a scheduler. history may be nil to disable the
// invocation audit trail.
func NewScheduler(reg *skill.Registry, exec *Executor, st *stats.Collector, history store.Store, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		registry: reg,
		exec:     exec,
		stats:    st,
		history:  history,
		logger:   logger,
		routes:   make(map[string]Route),
	}
}

// Run resolves and executes a single skill. An unregistered name comes back
// as a failed Result, never a panic.
func (s *Scheduler) Run(ctx context.Context, name string, params skill.Params) model.Result {
	d, err := s.registry.Resolve(name)
	if err != nil {
		res := model.Result{
			Success: false,
			Skill:   name,
			Error:   err.Error(),
		}
		s.record(name, "", params, res)
		return res
	}

	res := s.exec.Execute(ctx, d.Name, d.Skill, params, d.DataType, 0)
	s.record(d.Name, d.DataType, params, res)
	return res
}

// RunWithFallback executes the primary skill and, if it fails, walks the
// fallback chain in order. fallback_triggers is incremented once for each
// fallback entry attempted, not once per episode. The first success ends the
// walk; exhaustion returns a failure naming every attempted skill.
func (s *Scheduler) RunWithFallback(ctx context.Context, primary string, fallbacks []string, params skill.Params) model.Result {
	res := s.Run(ctx, primary, params)
	if res.Success {
		return res
	}

	for _, name := range fallbacks {
		s.stats.FallbackTrigger()
		s.logger.Debug("falling back", "from", primary, "to", name)
		res = s.Run(ctx, name, params)
		if res.Success {
			return res
		}
	}

	return model.Result{
		Success: false,
		Error:   fmt.Sprintf("All skills failed: %s, %v", primary, fallbacks),
	}
}

// RegisterRoute binds a logical task name to a primary skill and fallbacks.
// Re-registering a task overwrites the prior route.
func (s *Scheduler) RegisterRoute(task, primary string, fallbacks ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[task] = Route{Primary: primary, Fallbacks: fallbacks}
}

// RunTask runs a logical task: a registered route resolves to its fallback
// chain, any other name is treated as a direct skill invocation.
func (s *Scheduler) RunTask(ctx context.Context, task string, params skill.Params) model.Result {
	s.mu.RLock()
	rt, ok := s.routes[task]
	s.mu.RUnlock()

	if ok {
		return s.RunWithFallback(ctx, rt.Primary, rt.Fallbacks, params)
	}
	return s.Run(ctx, task, params)
}

// Payload runs a task and unwraps the result for callers that prefer
// error-style handling: the payload on success, an error otherwise.
func (s *Scheduler) Payload(ctx context.Context, task string, params skill.Params) (any, error) {
	res := s.RunTask(ctx, task, params)
	if !res.Success {
		return nil, errors.New(res.Error)
	}
	return res.Data, nil
}

// Knows reports whether name resolves to either a registered route or a
// registered skill.
func (s *Scheduler) Knows(name string) bool {
	s.mu.RLock()
	_, ok := s.routes[name]
	s.mu.RUnlock()
	if ok {
		return true
	}
	_, err := s.registry.Resolve(name)
	return err == nil
}

// Routes returns all registered routes, sorted by task name for a stable
// API response.
func (s *Scheduler) Routes() []RouteInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]RouteInfo, 0, len(s.routes))
	for task, rt := range s.routes {
		infos = append(infos, RouteInfo{Task: task, Route: rt})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Task < infos[j].Task
	})
	return infos
}

// Stats returns a snapshot of the dispatch counters together with the
// current cache and registry sizes.
func (s *Scheduler) Stats() stats.Snapshot {
	return s.stats.Snapshot(s.exec.Cache().Len(), s.registry.Len())
}

// record appends one attempt to the invocation history, when one is wired.
// History writes never fail a dispatch; errors are logged and dropped.
func (s *Scheduler) record(name, dataType string, params skill.Params, res model.Result) {
	if s.history == nil {
		return
	}
	inv := &model.Invocation{
		ID:          model.NewID(),
		Skill:       name,
		Fingerprint: cache.Fingerprint(name, params),
		DataType:    dataType,
		Origin:      res.Origin,
		Success:     res.Success,
		Error:       res.Error,
		Cost:        res.Cost,
		DurationMS:  res.DurationMS,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.history.RecordInvocation(context.Background(), inv); err != nil {
		s.logger.Error("record invocation", "skill", name, "error", err)
	}
}
