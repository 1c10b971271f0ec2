package api

import (
	"context"
	"errors"
)

// ErrorSeverity represents how a failed attempt should be handled
type ErrorSeverity int

const (
	ErrorSeverityNone      ErrorSeverity = iota // no error
	ErrorSeverityRetryable                      // repeat the same request
	ErrorSeverityFatal                          // give up and surface the error
)

func (s ErrorSeverity) String() string {
	switch s {
	case ErrorSeverityNone:
		return "none"
	case ErrorSeverityRetryable:
		return "retryable"
	case ErrorSeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// ErrorClassifier decides whether a failed attempt is worth repeating
type ErrorClassifier interface {
	ClassifyError(err error) ErrorSeverity
}

// TimeoutMessageClassifier retries only the gateway timeout notice. Transport
// failures, malformed bodies and cancellation are surfaced immediately.
type TimeoutMessageClassifier struct{}

// NewTimeoutMessageClassifier creates the default classifier
func NewTimeoutMessageClassifier() ErrorClassifier {
	return TimeoutMessageClassifier{}
}

// ClassifyError classifies err by severity
func (TimeoutMessageClassifier) ClassifyError(err error) ErrorSeverity {
	if err == nil {
		return ErrorSeverityNone
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrorSeverityFatal
	}

	if errors.Is(err, ErrEndpointTimeout) {
		return ErrorSeverityRetryable
	}

	return ErrorSeverityFatal
}
