package resilience

import (
	"context"
	"fmt"
	"time"

	"github.com/vietddude/steady/internal/telemetry"
)

// TimeoutError is synthesized when an operation loses the race against its
// deadline. It carries the caller-supplied message, independent of whatever
// the operation itself would eventually have produced.
type TimeoutError struct {
	Message string
	After   time.Duration
}

func (e *TimeoutError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("operation timed out after %s", e.After)
}

// Timeout reports this as a timeout for net.Error-style checks.
func (e *TimeoutError) Timeout() bool { return true }

// WithTimeout races op against a timer. Whichever settles first wins.
//
// The op goroutine receives a context canceled as soon as the race is
// decided, so well-behaved operations can stop early; the racer itself
// cannot force termination, it only discards the loser's result. The timer
// is stopped on the op-wins path so no scheduled callback outlives the race.
func WithTimeout[T any](ctx context.Context, d time.Duration, msg string, op func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Buffered so a losing op can still complete and be discarded without
	// leaking its goroutine.
	done := make(chan outcome, 1)
	go func() {
		value, err := op(opCtx)
		done <- outcome{value: value, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.C:
		telemetry.TimeoutsTotal.Inc()
		return zero, &TimeoutError{Message: msg, After: d}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// NewTimeoutContext returns a cancellation handle pre-armed to fire after d.
// Hand it to lower-level calls that should observe the deadline themselves
// instead of merely having their result discarded. The caller must invoke
// the returned CancelFunc on every exit path.
func NewTimeoutContext(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}
