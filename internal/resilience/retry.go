package resilience

import (
	"context"
	"log/slog"
	"time"

	"github.com/vietddude/steady/internal/telemetry"
)

// Do executes op with exponential backoff, at most policy.MaxRetries+1
// attempts in total.
//
// A successful attempt returns immediately. A failure classified as
// permanent returns immediately with the original error, spending none of
// the retry budget. When the budget runs out the last observed failure is
// returned unchanged, so callers keep the original error shape.
func Do[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error)) (T, error) {
	p := policy.withDefaults()

	var zero T
	var lastErr error

	attempts := p.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			if attempt > 0 {
				telemetry.RetryOutcomes.WithLabelValues("recovered").Inc()
			}
			return result, nil
		}
		lastErr = err

		verdict := Classify(err)
		if !verdict.Retryable {
			telemetry.RetryOutcomes.WithLabelValues("permanent").Inc()
			return zero, err
		}
		if attempt == attempts-1 {
			break
		}

		delay := Delay(attempt, p)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}
		telemetry.RetryWaits.Inc()
		slog.Debug("Retrying operation",
			"attempt", attempt+1,
			"max_attempts", attempts,
			"delay", delay,
			"status", verdict.StatusCode,
			"error", err)

		select {
		case <-ctx.Done():
			telemetry.RetryOutcomes.WithLabelValues("canceled").Inc()
			return zero, ctx.Err()
		case <-time.After(delay):
		}
	}

	telemetry.RetryOutcomes.WithLabelValues("exhausted").Inc()
	return zero, lastErr
}
