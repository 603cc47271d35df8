package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/vietddude/steady/internal/core/config"
)

func testConfig() *config.AppConfig {
	cfg := config.Default()
	cfg.Retry.InitialDelayMS = 1
	cfg.Retry.MaxDelayMS = 5
	cfg.Simulation.FetchIntervalMS = 10
	cfg.Simulation.ScrollIntervalMS = 5
	cfg.Simulation.FetchTimeoutMS = 50
	cfg.Simulation.FailureRate = 0.5
	cfg.Simulation.TotalItems = 200
	cfg.Simulation.Seed = 1
	return cfg
}

func TestRunner_StartStop(t *testing.T) {
	r := NewRunner(testConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond) // let both loops tick

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()

	if err := r.Stop(stopCtx); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
}

func TestRunner_FetchPopulatesCache(t *testing.T) {
	cfg := testConfig()
	cfg.Simulation.FailureRate = 0 // deterministic success
	r := NewRunner(cfg)

	r.fetchPage(context.Background(), 7)

	page, ok := r.pages.Get(7)
	if !ok {
		t.Fatal("expected page 7 to be memoized after a successful fetch")
	}
	if page.Number != 7 {
		t.Errorf("cached page number = %d, want 7", page.Number)
	}
	if page.RequestID == "" {
		t.Error("expected a request ID on the fetched page")
	}
}

func TestRunner_CacheBoundHoldsUnderMixedOutcomes(t *testing.T) {
	cfg := testConfig()
	cfg.Retry.MaxRetries = 1
	cfg.Simulation.FetchTimeoutMS = 10
	cfg.Cache.MaxSize = 4
	r := NewRunner(cfg)

	for i := 0; i < 12; i++ {
		r.fetchPage(context.Background(), i)
	}

	// Some fetches fail, some stall, some succeed; the capacity bound must
	// hold regardless.
	if r.pages.Len() > cfg.Cache.MaxSize {
		t.Errorf("cache grew past capacity: %d > %d", r.pages.Len(), cfg.Cache.MaxSize)
	}
}
