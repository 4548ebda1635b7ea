package store

import (
	"context"

	"github.com/dcoale/skilld/internal/model"
)

// InvocationStats holds aggregates computed over the recorded history.
type InvocationStats struct {
	Total         int            `json:"total"`
	CountBySkill  map[string]int `json:"count_by_skill"`
	CountByOrigin map[string]int `json:"count_by_origin"`
	AvgDurationMS float64        `json:"avg_duration_ms"`
}

// Store defines the persistence operations for the invocation history.
type Store interface {
	RecordInvocation(ctx context.Context, inv *model.Invocation) error
	ListInvocations(ctx context.Context, limit, offset int) ([]*model.Invocation, int, error)
	GetInvocationStats(ctx context.Context) (*InvocationStats, error)
	Close() error
}
