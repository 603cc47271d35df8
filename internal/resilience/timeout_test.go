package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithTimeout_OperationWins(t *testing.T) {
	result, err := WithTimeout(context.Background(), 500*time.Millisecond, "too slow", func(ctx context.Context) (string, error) {
		return "done", nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "done" {
		t.Errorf("result = %q, want done", result)
	}
}

func TestWithTimeout_TimerWins(t *testing.T) {
	start := time.Now()
	_, err := WithTimeout(context.Background(), 50*time.Millisecond, "fetch students timed out", func(ctx context.Context) (string, error) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(500 * time.Millisecond):
			return "late", nil
		}
	})
	elapsed := time.Since(start)

	var te *TimeoutError
	if !errors.As(err, &te) {
		t.Fatalf("expected TimeoutError, got %v", err)
	}
	if te.Message != "fetch students timed out" {
		t.Errorf("message = %q, want caller-supplied message", te.Message)
	}
	if elapsed > 250*time.Millisecond {
		t.Errorf("timeout fired after %v, expected ~50ms", elapsed)
	}
}

func TestWithTimeout_PropagatesOperationError(t *testing.T) {
	opErr := &Failure{StatusCode: 500, Message: "boom"}
	_, err := WithTimeout(context.Background(), time.Second, "too slow", func(ctx context.Context) (string, error) {
		return "", opErr
	})

	// The original failure shape survives the race.
	if !errors.Is(err, opErr) {
		t.Errorf("expected the operation's own error, got %v", err)
	}
}

func TestWithTimeout_CancelsLosingOperation(t *testing.T) {
	canceled := make(chan struct{})

	_, err := WithTimeout(context.Background(), 20*time.Millisecond, "too slow", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		close(canceled)
		return "", ctx.Err()
	})

	if err == nil {
		t.Fatal("expected timeout error")
	}

	// The loser observes cooperative cancellation shortly after the race.
	select {
	case <-canceled:
	case <-time.After(time.Second):
		t.Error("losing operation never saw its context canceled")
	}
}

func TestWithTimeout_OuterContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := WithTimeout(ctx, time.Second, "too slow", func(ctx context.Context) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewTimeoutContext(t *testing.T) {
	ctx, cancel := NewTimeoutContext(context.Background(), 30*time.Millisecond)
	defer cancel()

	deadline, ok := ctx.Deadline()
	if !ok {
		t.Fatal("expected a deadline to be armed")
	}
	if time.Until(deadline) > 50*time.Millisecond {
		t.Errorf("deadline too far in the future: %v", deadline)
	}

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context never fired")
	}
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", ctx.Err())
	}
}

func TestTimeoutError_DefaultMessage(t *testing.T) {
	e := &TimeoutError{After: 2 * time.Second}
	if e.Error() == "" {
		t.Error("expected a synthesized message")
	}
	if !e.Timeout() {
		t.Error("TimeoutError must report Timeout() = true")
	}
}
