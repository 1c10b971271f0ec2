package api

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// DefaultMaxAttempts is the total number of requests a query may issue
const DefaultMaxAttempts = 3

// ErrAttemptsExhausted is returned once every attempt hit a retryable error
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// FixedRetry repeats an operation a fixed number of times with a constant
// delay between attempts. A zero delay retries immediately.
type FixedRetry struct {
	maxAttempts int
	delay       time.Duration
	sleep       SleepFunc
	classifier  ErrorClassifier
}

// NewFixedRetry creates a retry policy allowing maxAttempts total attempts
func NewFixedRetry(maxAttempts int, delay time.Duration) *FixedRetry {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &FixedRetry{
		maxAttempts: maxAttempts,
		delay:       delay,
		sleep:       contextSleep,
		classifier:  NewTimeoutMessageClassifier(),
	}
}

// WithSleep replaces the wait between attempts
func (r *FixedRetry) WithSleep(sleep SleepFunc) *FixedRetry {
	if sleep != nil {
		r.sleep = sleep
	}
	return r
}

// WithClassifier replaces the retryable-error decision
func (r *FixedRetry) WithClassifier(classifier ErrorClassifier) *FixedRetry {
	if classifier != nil {
		r.classifier = classifier
	}
	return r
}

func (r *FixedRetry) MaxAttempts() int {
	return r.maxAttempts
}

// Execute calls fn until it succeeds, fails with a non-retryable error or the
// attempt budget is spent. used is the number of attempts already consumed;
// fn receives the 1-based number of the current attempt.
func (r *FixedRetry) Execute(ctx context.Context, used int, fn func(attempt int) error) error {
	if used < 0 {
		used = 0
	}

	var lastErr error
	for attempt := used; attempt < r.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(attempt + 1)
		if err == nil {
			return nil
		}

		if r.classifier.ClassifyError(err) != ErrorSeverityRetryable {
			return err
		}
		lastErr = err

		if attempt+1 < r.maxAttempts && r.delay > 0 {
			if err := r.sleep(ctx, r.delay); err != nil {
				return err
			}
		}
	}

	if lastErr == nil {
		return fmt.Errorf("%w: %d of %d attempts already used", ErrAttemptsExhausted, used, r.maxAttempts)
	}
	return fmt.Errorf("%w after %d attempts: %w", ErrAttemptsExhausted, r.maxAttempts, lastErr)
}

func contextSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
