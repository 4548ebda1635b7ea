package store

import (
	"context"
	"testing"
	"time"

	"github.com/dcoale/skilld/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeInvocation(skill, origin string, success bool) *model.Invocation {
	return &model.Invocation{
		ID:          model.NewID(),
		Skill:       skill,
		Fingerprint: "fp-" + skill,
		DataType:    model.DataStockPrice,
		Origin:      origin,
		Success:     success,
		Cost:        1,
		DurationMS:  12,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestRecordAndListInvocations(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := makeInvocation("sina_quote", model.OriginLive, true)
	first.CreatedAt = time.Now().UTC().Add(-time.Minute)
	second := makeInvocation("tencent_quote", model.OriginCache, true)

	if err := s.RecordInvocation(ctx, first); err != nil {
		t.Fatalf("RecordInvocation: %v", err)
	}
	if err := s.RecordInvocation(ctx, second); err != nil {
		t.Fatalf("RecordInvocation: %v", err)
	}

	invocations, total, err := s.ListInvocations(ctx, 10, 0)
	if err != nil {
		t.Fatalf("ListInvocations: %v", err)
	}
	if total != 2 || len(invocations) != 2 {
		t.Fatalf("total = %d, len = %d, want 2, 2", total, len(invocations))
	}
	// Newest first.
	if invocations[0].Skill != "tencent_quote" {
		t.Errorf("invocations[0].Skill = %q, want tencent_quote", invocations[0].Skill)
	}
	if invocations[1].Origin != model.OriginLive {
		t.Errorf("invocations[1].Origin = %q, want live", invocations[1].Origin)
	}
}

func TestListInvocationsPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		inv := makeInvocation("web_fetch", model.OriginLive, true)
		inv.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Second)
		if err := s.RecordInvocation(ctx, inv); err != nil {
			t.Fatalf("RecordInvocation[%d]: %v", i, err)
		}
	}

	invocations, total, err := s.ListInvocations(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListInvocations: %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(invocations) != 2 {
		t.Errorf("len = %d, want 2", len(invocations))
	}
}

func TestGetInvocationStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	records := []*model.Invocation{
		makeInvocation("sina_quote", model.OriginLive, true),
		makeInvocation("sina_quote", model.OriginCache, true),
		makeInvocation("jina_reader", model.OriginLive, false),
	}
	for i, inv := range records {
		if err := s.RecordInvocation(ctx, inv); err != nil {
			t.Fatalf("RecordInvocation[%d]: %v", i, err)
		}
	}

	stats, err := s.GetInvocationStats(ctx)
	if err != nil {
		t.Fatalf("GetInvocationStats: %v", err)
	}
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.CountBySkill["sina_quote"] != 2 {
		t.Errorf("CountBySkill[sina_quote] = %d, want 2", stats.CountBySkill["sina_quote"])
	}
	if stats.CountByOrigin[model.OriginLive] != 2 {
		t.Errorf("CountByOrigin[live] = %d, want 2", stats.CountByOrigin[model.OriginLive])
	}
	if stats.AvgDurationMS != 12 {
		t.Errorf("AvgDurationMS = %v, want 12", stats.AvgDurationMS)
	}
}

func TestGetInvocationStatsEmpty(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.GetInvocationStats(context.Background())
	if err != nil {
		t.Fatalf("GetInvocationStats: %v", err)
	}
	if stats.Total != 0 || stats.AvgDurationMS != 0 {
		t.Errorf("stats = %+v, want zeroes", stats)
	}
}
