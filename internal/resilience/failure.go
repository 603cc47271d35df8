package resilience

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Failure represents a failed remote operation. A StatusCode of zero means
// no response was received at all (network-level failure).
type Failure struct {
	StatusCode int
	Message    string
	Err        error
}

func (f *Failure) Error() string {
	if f.StatusCode == 0 {
		if f.Err != nil {
			return fmt.Sprintf("request failed: %v", f.Err)
		}
		return fmt.Sprintf("request failed: %s", f.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", f.StatusCode, f.Message)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Classification is the retryability verdict for a failure.
type Classification struct {
	Retryable  bool
	StatusCode int
	Message    string
}

// Classify inspects a failure and reports whether it is transient.
//
// Retryable: no response received (network-level), 5xx, 429, 408, and the
// equivalent gRPC codes. Not retryable: every other shape, including caller
// cancellation and errors this package cannot recognize (fail closed).
// Classification depends only on the failure itself, never on call-site
// context, and never panics.
func Classify(err error) Classification {
	if err == nil {
		return Classification{}
	}
	c := Classification{Message: err.Error()}

	// Caller cancellation is intent, not a transient fault.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return c
	}

	// A lost timeout race means no response arrived within budget.
	var te *TimeoutError
	if errors.As(err, &te) {
		c.Retryable = true
		return c
	}

	var f *Failure
	if errors.As(err, &f) {
		c.StatusCode = f.StatusCode
		c.Retryable = retryableStatus(f.StatusCode)
		return c
	}

	if s, ok := status.FromError(err); ok && s.Code() != codes.OK {
		c.Retryable = retryableCode(s.Code())
		return c
	}

	var ne net.Error
	if errors.As(err, &ne) {
		c.Retryable = true
		return c
	}

	return c
}

func retryableStatus(code int) bool {
	switch {
	case code == 0:
		return true // no response received
	case code >= 500 && code <= 599:
		return true
	case code == 429, code == 408:
		return true
	default:
		return false
	}
}

func retryableCode(code codes.Code) bool {
	switch code {
	case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Aborted:
		return true
	default:
		return false
	}
}
