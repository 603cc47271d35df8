// Package simulation drives the toolkit with synthetic workloads: a flaky
// paginated fetch routed through the retry controller and timeout racer, and
// a scroll stream shaped by a throttler feeding the windowing calculator.
package simulation

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/steady/internal/cache"
	"github.com/vietddude/steady/internal/core/config"
	"github.com/vietddude/steady/internal/resilience"
	"github.com/vietddude/steady/internal/shaper"
	"github.com/vietddude/steady/internal/telemetry"
	"github.com/vietddude/steady/internal/window"
)

// Page is the payload of one simulated roster fetch.
type Page struct {
	RequestID string
	Number    int
	Items     int
}

// Runner owns the simulated workloads and their shared state.
type Runner struct {
	cfg    *config.AppConfig
	policy resilience.Policy
	pages  *cache.Cache[int, Page]

	throttler *shaper.Throttler
	debouncer *shaper.Debouncer

	log *slog.Logger
	rng *rand.Rand

	mu        sync.Mutex
	scrollTop int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a runner from configuration.
func NewRunner(cfg *config.AppConfig) *Runner {
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Runner{
		cfg:       cfg,
		policy:    cfg.Retry.Policy(),
		pages:     cache.New[int, Page](cfg.Cache.MaxSize),
		throttler: shaper.NewThrottler(time.Duration(cfg.Shaper.ThrottleMS) * time.Millisecond),
		debouncer: shaper.NewDebouncer(time.Duration(cfg.Shaper.DebounceMS) * time.Millisecond),
		log:       slog.Default().With("component", "simulation"),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// Start launches the workload loops. Non-blocking.
func (r *Runner) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(2)
	go r.fetchLoop(runCtx)
	go r.scrollLoop(runCtx)

	r.log.Info("Simulation started",
		"fetch_interval_ms", r.cfg.Simulation.FetchIntervalMS,
		"scroll_interval_ms", r.cfg.Simulation.ScrollIntervalMS,
		"failure_rate", r.cfg.Simulation.FailureRate)
	return nil
}

// Stop halts the loops and releases shaper timers.
func (r *Runner) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	r.throttler.Stop()
	r.debouncer.Stop()
	r.log.Info("Simulation stopped")
	return nil
}

// fetchLoop periodically requests a random page, memoizing results and
// recovering from transient failures.
func (r *Runner) fetchLoop(ctx context.Context) {
	defer r.wg.Done()

	interval := time.Duration(r.cfg.Simulation.FetchIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchPage(ctx, r.randomPage())
		}
	}
}

func (r *Runner) fetchPage(ctx context.Context, number int) {
	if page, ok := r.pages.Get(number); ok {
		telemetry.SimFetches.WithLabelValues("cached").Inc()
		r.log.Debug("Page served from cache", "page", page.Number)
		return
	}

	timeout := time.Duration(r.cfg.Simulation.FetchTimeoutMS) * time.Millisecond
	requestID := uuid.New().String()

	page, err := resilience.Do(ctx, r.policy, func(ctx context.Context) (Page, error) {
		return resilience.WithTimeout(ctx, timeout, "fetch page timed out", func(ctx context.Context) (Page, error) {
			return r.remoteFetch(ctx, requestID, number)
		})
	})
	if err != nil {
		telemetry.SimFetches.WithLabelValues("failed").Inc()
		r.log.Warn("Fetch failed", "request_id", requestID, "page", number, "error", err)
		return
	}

	r.pages.Set(number, page)
	telemetry.SimFetches.WithLabelValues("ok").Inc()
	r.log.Debug("Fetched page", "request_id", requestID, "page", number, "items", page.Items)
}

// remoteFetch pretends to be a backend call with a configurable share of
// transient failures, occasional stalls and rare permanent errors.
func (r *Runner) remoteFetch(ctx context.Context, requestID string, number int) (Page, error) {
	r.mu.Lock()
	roll := r.rng.Float64()
	r.mu.Unlock()

	switch {
	case roll < r.cfg.Simulation.FailureRate/2:
		return Page{}, &resilience.Failure{StatusCode: 503, Message: "service unavailable"}
	case roll < r.cfg.Simulation.FailureRate*0.75:
		return Page{}, &resilience.Failure{StatusCode: 429, Message: "too many requests"}
	case roll < r.cfg.Simulation.FailureRate:
		// Stall past the timeout budget; the racer cuts this off.
		select {
		case <-ctx.Done():
			return Page{}, ctx.Err()
		case <-time.After(10 * time.Duration(r.cfg.Simulation.FetchTimeoutMS) * time.Millisecond):
		}
	case roll < r.cfg.Simulation.FailureRate+0.02:
		return Page{}, &resilience.Failure{StatusCode: 404, Message: fmt.Sprintf("page %d not found", number)}
	}

	return Page{RequestID: requestID, Number: number, Items: 20}, nil
}

func (r *Runner) randomPage() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(r.cfg.Simulation.TotalItems/20 + 1)
}

// scrollLoop simulates a user scrolling a long roster. Every event goes
// through the throttler before hitting the windowing calculator; the
// debouncer reports once the scroll settles.
func (r *Runner) scrollLoop(ctx context.Context) {
	defer r.wg.Done()

	interval := time.Duration(r.cfg.Simulation.ScrollIntervalMS) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	maxScroll := r.cfg.Simulation.TotalItems*r.cfg.Window.ItemHeight - r.cfg.Window.ContainerHeight
	if maxScroll < 0 {
		maxScroll = 0
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.mu.Lock()
			r.scrollTop += r.rng.Intn(3*r.cfg.Window.ItemHeight) - r.cfg.Window.ItemHeight
			if r.scrollTop < 0 {
				r.scrollTop = 0
			}
			if r.scrollTop > maxScroll {
				r.scrollTop = maxScroll
			}
			scrollTop := r.scrollTop
			r.mu.Unlock()

			r.throttler.Call(func() {
				visible := window.Visible(
					r.cfg.Simulation.TotalItems,
					r.cfg.Window.ItemHeight,
					r.cfg.Window.ContainerHeight,
					scrollTop,
					r.cfg.Window.Overscan,
				)
				telemetry.VisibleItems.Set(float64(visible.Count()))
			})

			r.debouncer.Call(func() {
				r.log.Debug("Scroll settled", "scroll_top", scrollTop)
			})
		}
	}
}
