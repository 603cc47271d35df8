package resilience

import (
	"math"
	"time"
)

// Policy controls retry behavior.
type Policy struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// OnRetry, if set, is invoked before each backoff wait with the 0-based
	// retry index, the computed delay and the failure that triggered it.
	// Purely observational.
	OnRetry func(attempt int, delay time.Duration, err error)
}

// DefaultPolicy returns the standard retry policy.
func DefaultPolicy() Policy {
	return Policy{
		MaxRetries:   3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

// withDefaults fills fields outside their valid domain from DefaultPolicy.
// MaxRetries is taken as-is: zero means a single attempt, never retried.
// The receiver is a copy, so the caller's policy is never mutated.
func (p Policy) withDefaults() Policy {
	def := DefaultPolicy()
	if p.InitialDelay <= 0 {
		p.InitialDelay = def.InitialDelay
	}
	if p.MaxDelay < p.InitialDelay {
		p.MaxDelay = max(def.MaxDelay, p.InitialDelay)
	}
	if p.Multiplier <= 1 {
		p.Multiplier = def.Multiplier
	}
	return p
}

// Delay computes the backoff before retry number attempt (0-based, where 0
// is the first retry after the original call failed):
//
//	delay = min(InitialDelay * Multiplier^attempt, MaxDelay)
//
// Deterministic, no jitter.
func Delay(attempt int, p Policy) time.Duration {
	d := float64(p.InitialDelay) * math.Pow(p.Multiplier, float64(attempt))
	if d > float64(p.MaxDelay) {
		d = float64(p.MaxDelay)
	}
	return time.Duration(d)
}
