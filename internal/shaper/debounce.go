// Package shaper provides debounce and throttle primitives that limit how
// often expensive work is triggered from high-frequency input events.
package shaper

import (
	"sync"
	"time"

	"github.com/vietddude/steady/internal/telemetry"
)

// Debouncer delays invocation until calls stop arriving for a full delay
// window. Each new call supersedes the pending one, so only the most recent
// callback ever fires.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending func()
	timer   *time.Timer
	stopped bool
}

// NewDebouncer creates a debouncer with the given quiet window.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Call schedules fn, replacing any pending invocation. The latest callback
// reference always wins, never the one captured at setup time.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		telemetry.ShaperSuppressed.WithLabelValues("debounce").Inc()
	}
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	stopped := d.stopped
	d.mu.Unlock()

	if fn != nil && !stopped {
		fn()
	}
}

// Stop cancels any pending invocation and releases the timer. Call on
// teardown; the debouncer must not be reused afterwards.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
