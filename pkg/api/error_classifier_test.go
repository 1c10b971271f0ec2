package api

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestTimeoutMessageClassifier_ClassifyError(t *testing.T) {
	classifier := NewTimeoutMessageClassifier()

	tests := []struct {
		name     string
		err      error
		expected ErrorSeverity
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: ErrorSeverityNone,
		},
		{
			name:     "endpoint timeout",
			err:      ErrEndpointTimeout,
			expected: ErrorSeverityRetryable,
		},
		{
			name:     "wrapped endpoint timeout",
			err:      fmt.Errorf("attempt 2: %w", ErrEndpointTimeout),
			expected: ErrorSeverityRetryable,
		},
		{
			name:     "unexpected response",
			err:      fmt.Errorf("%w: status 500", ErrUnexpectedResponse),
			expected: ErrorSeverityFatal,
		},
		{
			name:     "transport error mentioning timeout",
			err:      errors.New("request failed: dial tcp: i/o timeout"),
			expected: ErrorSeverityFatal,
		},
		{
			name:     "context canceled",
			err:      context.Canceled,
			expected: ErrorSeverityFatal,
		},
		{
			name:     "deadline exceeded",
			err:      fmt.Errorf("request failed: %w", context.DeadlineExceeded),
			expected: ErrorSeverityFatal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := classifier.ClassifyError(tt.err)
			if result != tt.expected {
				t.Errorf("ClassifyError(%v) = %v, expected %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestErrorSeverity_String(t *testing.T) {
	if ErrorSeverityRetryable.String() != "retryable" {
		t.Errorf("Expected 'retryable', got %s", ErrorSeverityRetryable.String())
	}
	if ErrorSeverity(42).String() != "unknown" {
		t.Errorf("Expected 'unknown', got %s", ErrorSeverity(42).String())
	}
}
