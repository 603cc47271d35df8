package shaper

import (
	"sync"
	"time"

	"github.com/vietddude/steady/internal/telemetry"
)

// Throttler lets the first call through immediately, then drops everything
// until limit has elapsed. The next call after the window re-arms runs
// immediately and starts a fresh window.
type Throttler struct {
	limit time.Duration

	mu      sync.Mutex
	armed   bool
	timer   *time.Timer
	stopped bool
}

// NewThrottler creates a throttler with the given cooldown window.
func NewThrottler(limit time.Duration) *Throttler {
	return &Throttler{limit: limit, armed: true}
}

// Call runs fn when the window is open, otherwise drops it.
func (t *Throttler) Call(fn func()) {
	t.mu.Lock()
	if t.stopped || !t.armed {
		if !t.stopped {
			telemetry.ShaperSuppressed.WithLabelValues("throttle").Inc()
		}
		t.mu.Unlock()
		return
	}
	t.armed = false
	t.timer = time.AfterFunc(t.limit, t.rearm)
	t.mu.Unlock()

	fn()
}

func (t *Throttler) rearm() {
	t.mu.Lock()
	if !t.stopped {
		t.armed = true
	}
	t.timer = nil
	t.mu.Unlock()
}

// Stop releases the cooldown timer. Call on teardown; the throttler must
// not be reused afterwards.
func (t *Throttler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
