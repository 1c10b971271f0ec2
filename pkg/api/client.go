package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ubersuggest-go/pkg/logger"
)

// DefaultEndpoint is the host serving the keyword query
const DefaultEndpoint = "https://dk1ecw0kik.execute-api.us-east-1.amazonaws.com"

// queryTemplate takes endpoint, keyword, language and country
const queryTemplate = "%s/prod/query?query=%s&language=%s&country=%s&google=http://www.google.com&service=i"

// Query identifies a single keyword lookup
type Query struct {
	Keyword  string
	Language string
	Country  string
}

// BuildQueryURL fills the query template. The keyword is embedded verbatim;
// callers escape spaces beforehand.
func BuildQueryURL(endpoint string, q Query) string {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return fmt.Sprintf(queryTemplate, strings.TrimRight(endpoint, "/"), q.Keyword, q.Language, q.Country)
}

// KeywordAPI runs keyword queries with the gateway-timeout retry policy
type KeywordAPI struct {
	endpoint string
	fetcher  Fetcher
	retry    *FixedRetry
	log      *logger.Logger
}

// NewKeywordAPI creates a query client. A nil fetcher uses fasthttp with
// default settings and a nil retry allows DefaultMaxAttempts immediate attempts.
func NewKeywordAPI(endpoint string, fetcher Fetcher, retry *FixedRetry) *KeywordAPI {
	if fetcher == nil {
		fetcher = NewHTTPClient(DefaultConnectionConfig())
	}
	if retry == nil {
		retry = NewFixedRetry(DefaultMaxAttempts, 0)
	}
	return &KeywordAPI{
		endpoint: endpoint,
		fetcher:  fetcher,
		retry:    retry,
		log:      logger.GetLogger().WithField("component", "api_client"),
	}
}

func (a *KeywordAPI) Endpoint() string {
	if a.endpoint == "" {
		return DefaultEndpoint
	}
	return a.endpoint
}

// Query fetches results for q. usedAttempts counts attempts already spent
// against the retry budget. Once every remaining attempt returned the timeout
// notice the error wraps ErrAttemptsExhausted.
func (a *KeywordAPI) Query(ctx context.Context, q Query, usedAttempts int) (*QueryResults, error) {
	start := time.Now()
	queryURL := BuildQueryURL(a.endpoint, q)
	log := a.log.WithFields(map[string]interface{}{
		"keyword":  q.Keyword,
		"language": q.Language,
		"country":  q.Country,
	})
	log.Debug("Starting keyword query")

	var results *QueryResults
	err := a.retry.Execute(ctx, usedAttempts, func(attempt int) error {
		resp, err := a.fetcher.Fetch(ctx, queryURL)
		if err != nil {
			return err
		}

		parsed, err := ParseQueryResponse(resp.StatusCode, resp.Body)
		if err != nil {
			if errors.Is(err, ErrEndpointTimeout) {
				log.WithFields(map[string]interface{}{
					"attempt":      attempt,
					"max_attempts": a.retry.MaxAttempts(),
				}).Warn("Keyword service timed out")
			}
			return err
		}

		results = parsed
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Keyword query failed")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"processed":   len(results.ProcessedKeywords),
		"unprocessed": len(results.UnprocessedKeywords),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Keyword query completed")
	return results, nil
}
