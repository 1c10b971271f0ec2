package api

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFixedRetry_SuccessAfterTimeouts(t *testing.T) {
	retry := NewFixedRetry(3, 0)

	attempts := 0
	err := retry.Execute(context.Background(), 0, func(attempt int) error {
		attempts++
		if attempts < 3 {
			return ErrEndpointTimeout
		}
		return nil // Success on the last allowed attempt
	})

	if err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}

	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestFixedRetry_MaxAttemptsExceeded(t *testing.T) {
	retry := NewFixedRetry(3, 0)

	var seen []int
	err := retry.Execute(context.Background(), 0, func(attempt int) error {
		seen = append(seen, attempt)
		return ErrEndpointTimeout
	})

	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("Expected ErrAttemptsExhausted, got %v", err)
	}
	if !errors.Is(err, ErrEndpointTimeout) {
		t.Errorf("Expected last error to be wrapped, got %v", err)
	}

	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("Expected attempts [1 2 3], got %v", seen)
	}
}

func TestFixedRetry_UsedAttemptsAreSkipped(t *testing.T) {
	retry := NewFixedRetry(3, 0)

	attempts := 0
	err := retry.Execute(context.Background(), 2, func(attempt int) error {
		attempts++
		if attempt != 3 {
			t.Errorf("Expected attempt number 3, got %d", attempt)
		}
		return ErrEndpointTimeout
	})

	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Errorf("Expected ErrAttemptsExhausted, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestFixedRetry_BudgetAlreadySpent(t *testing.T) {
	retry := NewFixedRetry(3, 0)

	called := false
	err := retry.Execute(context.Background(), 3, func(attempt int) error {
		called = true
		return nil
	})

	if called {
		t.Error("Expected fn not to be called")
	}
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Errorf("Expected ErrAttemptsExhausted, got %v", err)
	}
}

func TestFixedRetry_NonRetryableError(t *testing.T) {
	retry := NewFixedRetry(3, 0)

	attempts := 0
	err := retry.Execute(context.Background(), 0, func(attempt int) error {
		attempts++
		return ErrUnexpectedResponse
	})

	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Errorf("Expected ErrUnexpectedResponse, got %v", err)
	}

	if attempts != 1 { // Should not retry
		t.Errorf("Expected 1 attempt, got %d", attempts)
	}
}

func TestFixedRetry_InjectedSleep(t *testing.T) {
	var waits []time.Duration
	retry := NewFixedRetry(3, 250*time.Millisecond).WithSleep(func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	})

	_ = retry.Execute(context.Background(), 0, func(attempt int) error {
		return ErrEndpointTimeout
	})

	// No wait after the final attempt
	if len(waits) != 2 {
		t.Fatalf("Expected 2 waits, got %d", len(waits))
	}
	for _, w := range waits {
		if w != 250*time.Millisecond {
			t.Errorf("Expected 250ms wait, got %v", w)
		}
	}
}

func TestFixedRetry_ContextCancellation(t *testing.T) {
	retry := NewFixedRetry(3, 100*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	err := retry.Execute(ctx, 0, func(attempt int) error {
		return ErrEndpointTimeout
	})

	if err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestNewFixedRetry_DefaultsAttempts(t *testing.T) {
	if got := NewFixedRetry(0, 0).MaxAttempts(); got != DefaultMaxAttempts {
		t.Errorf("Expected %d attempts, got %d", DefaultMaxAttempts, got)
	}
}
