package api

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TimeoutMessage is the body message the service gateway sends when the
// upstream query did not finish in time
const TimeoutMessage = "Endpoint request timed out"

var (
	// ErrEndpointTimeout marks a response carrying TimeoutMessage
	ErrEndpointTimeout = errors.New("endpoint request timed out")

	// ErrUnexpectedResponse marks a body that is neither a result set nor a
	// timeout notice
	ErrUnexpectedResponse = errors.New("unexpected response from keyword service")
)

// ParseQueryResponse decodes a keyword service body. The status code is only
// used for error context: the gateway reports timeouts with a non-200 status
// and a JSON body, so the body always decides.
func ParseQueryResponse(statusCode int, body []byte) (*QueryResults, error) {
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty body (status %d)", ErrUnexpectedResponse, statusCode)
	}

	var raw rawQueryResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode body: %w (response: %s)",
			ErrUnexpectedResponse, err, string(body[:min(len(body), 200)]))
	}

	if raw.Message == TimeoutMessage {
		return nil, ErrEndpointTimeout
	}

	if raw.Results == nil {
		return nil, fmt.Errorf("%w: status %d, message %q", ErrUnexpectedResponse, statusCode, raw.Message)
	}

	results := &QueryResults{
		ProcessedKeywords:   make([]KeywordRecord, 0, len(raw.Results.ProcessedKeywords)),
		UnprocessedKeywords: make([]string, 0, len(raw.Results.UnprocessedKeywords)),
	}
	for _, k := range raw.Results.ProcessedKeywords {
		results.ProcessedKeywords = append(results.ProcessedKeywords, k.toRecord())
	}
	for _, k := range raw.Results.UnprocessedKeywords {
		results.UnprocessedKeywords = append(results.UnprocessedKeywords, string(k))
	}

	return results, nil
}
