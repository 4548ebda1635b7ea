package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/dcoale/skilld/internal/api"
	"github.com/dcoale/skilld/internal/cache"
	"github.com/dcoale/skilld/internal/config"
	"github.com/dcoale/skilld/internal/dispatch"
	"github.com/dcoale/skilld/internal/skill"
	"github.com/dcoale/skilld/internal/skills"
	"github.com/dcoale/skilld/internal/stats"
	"github.com/dcoale/skilld/internal/store"
)

func main() {
	cfg := config.Load()
	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	logger.Info("skilld: starting",
		"listen_addr", cfg.ListenAddr,
		"db_path", cfg.DBPath,
		"sweep_schedule", cfg.SweepSchedule,
	)

	history, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer history.Close()

	resultCache := cache.New()
	collector := stats.NewCollector()
	registry := skill.NewRegistry()

	executor := dispatch.NewExecutor(resultCache, collector, logger)
	scheduler := dispatch.NewScheduler(registry, executor, collector, history, logger)

	// The client timeout is a transport-level backstop; per-invocation
	// budgets are enforced by the executor.
	client := &http.Client{Timeout: 60 * time.Second}
	skills.RegisterBuiltins(registry, scheduler, client)

	janitor, err := dispatch.NewJanitor(resultCache, cfg.SweepSchedule, logger)
	if err != nil {
		log.Fatalf("failed to schedule cache sweep: %v", err)
	}
	janitor.Start()
	defer janitor.Stop()

	srv := api.NewServer(cfg.ListenAddr, registry, scheduler, history, logger)

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
