package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
)

func fastConfig() Config {
	return Config{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		RetryMultiplier:     2.0,

		BreakerEnabled:          true,
		BreakerMinRequests:      3,
		BreakerFailureRatio:     0.5,
		BreakerOpenTimeout:      time.Minute,
		BreakerHalfOpenMaxCalls: 1,
	}
}

func retryAll(error) ErrorClassification {
	return ErrorClassification{Retryable: true, RecordFailure: true}
}

func retryNone(error) ErrorClassification {
	return ErrorClassification{Retryable: false, RecordFailure: true}
}

func TestExecuteSucceedsFirstAttempt(t *testing.T) {
	e := NewExecutor(fastConfig())

	calls := 0
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	}, retryAll)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestExecuteRetriesRetryableErrors(t *testing.T) {
	e := NewExecutor(fastConfig())

	calls := 0
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, retryAll)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestExecuteStopsAtMaxAttempts(t *testing.T) {
	e := NewExecutor(fastConfig())

	calls := 0
	wantErr := errors.New("still broken")
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return wantErr
	}, retryAll)
	if !errors.Is(err, wantErr) {
		t.Fatalf("Execute() error = %v, want %v", err, wantErr)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestExecuteDoesNotRetryNonRetryable(t *testing.T) {
	e := NewExecutor(fastConfig())

	calls := 0
	err := e.Execute(context.Background(), "op", func(context.Context) error {
		calls++
		return errors.New("bad request")
	}, retryNone)
	if err == nil {
		t.Fatalf("expected error")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestExecuteHonorsContextCancellation(t *testing.T) {
	e := NewExecutor(fastConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := e.Execute(ctx, "op", func(context.Context) error {
		calls++
		return nil
	}, retryAll)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryMaxAttempts = 1
	e := NewExecutor(cfg)

	boom := errors.New("boom")
	for i := 0; i < 3; i++ {
		_ = e.Execute(context.Background(), "flaky", func(context.Context) error {
			return boom
		}, retryNone)
	}

	err := e.Execute(context.Background(), "flaky", func(context.Context) error {
		return nil
	}, retryNone)
	if !IsCircuitOpen(err) {
		t.Fatalf("Execute() error = %v, want open circuit", err)
	}
}

func TestBreakersAreIsolatedPerOperation(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryMaxAttempts = 1
	e := NewExecutor(cfg)

	for i := 0; i < 3; i++ {
		_ = e.Execute(context.Background(), "broken", func(context.Context) error {
			return errors.New("boom")
		}, retryNone)
	}

	if err := e.Execute(context.Background(), "healthy", func(context.Context) error {
		return nil
	}, retryNone); err != nil {
		t.Fatalf("unrelated operation failed: %v", err)
	}
}

func TestUnrecordedErrorsDoNotTripBreaker(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryMaxAttempts = 1
	e := NewExecutor(cfg)

	ignore := func(error) ErrorClassification {
		return ErrorClassification{Retryable: false, RecordFailure: false}
	}

	for i := 0; i < 10; i++ {
		_ = e.Execute(context.Background(), "op", func(context.Context) error {
			return errors.New("not counted")
		}, ignore)
	}

	if err := e.Execute(context.Background(), "op", func(context.Context) error {
		return nil
	}, ignore); err != nil {
		t.Fatalf("Execute() error = %v, want breaker closed", err)
	}
}

func TestIsCircuitOpen(t *testing.T) {
	if !IsCircuitOpen(gobreaker.ErrOpenState) {
		t.Fatalf("ErrOpenState not detected")
	}
	if !IsCircuitOpen(gobreaker.ErrTooManyRequests) {
		t.Fatalf("ErrTooManyRequests not detected")
	}
	if IsCircuitOpen(errors.New("other")) {
		t.Fatalf("unrelated error flagged as open circuit")
	}
}

func TestNormalizeFillsInvalidValues(t *testing.T) {
	cfg := Config{RetryMaxBackoff: time.Millisecond, RetryInitialBackoff: time.Second}.normalize()
	def := DefaultConfig()

	if cfg.RetryMaxAttempts != def.RetryMaxAttempts {
		t.Fatalf("RetryMaxAttempts = %d", cfg.RetryMaxAttempts)
	}
	if cfg.RetryMaxBackoff != time.Second {
		t.Fatalf("RetryMaxBackoff = %v, want raised to initial backoff", cfg.RetryMaxBackoff)
	}
	if cfg.BreakerMinRequests != def.BreakerMinRequests || cfg.BreakerFailureRatio != def.BreakerFailureRatio {
		t.Fatalf("breaker defaults not applied: %+v", cfg)
	}
}
