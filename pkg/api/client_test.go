package api

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

type stubFetcher struct {
	responses []*RawResponse
	err       error
	urls      []string
}

func (s *stubFetcher) Fetch(ctx context.Context, rawURL string) (*RawResponse, error) {
	s.urls = append(s.urls, rawURL)
	if s.err != nil {
		return nil, s.err
	}
	resp := s.responses[0]
	if len(s.responses) > 1 {
		s.responses = s.responses[1:]
	}
	return resp, nil
}

const timeoutBody = `{"message": "Endpoint request timed out"}`

const successBody = `{"results": {"processed_keywords": [{"keyword": "algorithm", "volume": 90500, "cpc": 0.07, "competition": 0.02, "ms": []}], "unprocessed_keywords": ["algorithm analyst"]}}`

func TestBuildQueryURL(t *testing.T) {
	got := BuildQueryURL("https://example.test/", Query{Keyword: "software%20development", Language: "pt", Country: "br"})
	expected := "https://example.test/prod/query?query=software%20development&language=pt&country=br&google=http://www.google.com&service=i"
	if got != expected {
		t.Errorf("Expected %s, got %s", expected, got)
	}

	if got := BuildQueryURL("", Query{Keyword: "go", Language: "en", Country: "us"}); !strings.HasPrefix(got, DefaultEndpoint+"/prod/query?") {
		t.Errorf("Expected default endpoint prefix, got %s", got)
	}
}

func TestKeywordAPI_QueryRetriesTimeouts(t *testing.T) {
	fetcher := &stubFetcher{responses: []*RawResponse{
		{StatusCode: 504, Body: []byte(timeoutBody)},
		{StatusCode: 504, Body: []byte(timeoutBody)},
		{StatusCode: 200, Body: []byte(successBody)},
	}}
	client := NewKeywordAPI("https://example.test", fetcher, NewFixedRetry(3, 0))

	results, err := client.Query(context.Background(), Query{Keyword: "algorithm", Language: "en", Country: "us"}, 0)
	if err != nil {
		t.Fatalf("Expected success, got: %v", err)
	}
	if len(fetcher.urls) != 3 {
		t.Errorf("Expected 3 requests, got %d", len(fetcher.urls))
	}
	for _, u := range fetcher.urls {
		if u != fetcher.urls[0] {
			t.Errorf("Expected the same URL on every attempt, got %s and %s", fetcher.urls[0], u)
		}
	}
	if len(results.ProcessedKeywords) != 1 || results.UnprocessedKeywords[0] != "algorithm analyst" {
		t.Errorf("Unexpected results: %+v", results)
	}
}

func TestKeywordAPI_QueryExhausted(t *testing.T) {
	fetcher := &stubFetcher{responses: []*RawResponse{{StatusCode: 504, Body: []byte(timeoutBody)}}}
	client := NewKeywordAPI("https://example.test", fetcher, nil)

	_, err := client.Query(context.Background(), Query{Keyword: "algorithm"}, 0)
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("Expected ErrAttemptsExhausted, got: %v", err)
	}
	if len(fetcher.urls) != DefaultMaxAttempts {
		t.Errorf("Expected %d requests, got %d", DefaultMaxAttempts, len(fetcher.urls))
	}
}

func TestKeywordAPI_TransportErrorNotRetried(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("request failed: connection refused")}
	client := NewKeywordAPI("https://example.test", fetcher, nil)

	_, err := client.Query(context.Background(), Query{Keyword: "algorithm"}, 0)
	if err == nil || errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("Expected transport error, got: %v", err)
	}
	if len(fetcher.urls) != 1 {
		t.Errorf("Expected 1 request, got %d", len(fetcher.urls))
	}
}

func startKeywordServer(t *testing.T, handler fiber.Handler) string {
	t.Helper()

	app := fiber.New(fiber.Config{DisableStartupMessage: true, Immutable: true})
	app.Get("/prod/query", handler)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	go func() {
		_ = app.Listener(ln)
	}()
	t.Cleanup(func() {
		_ = app.Shutdown()
	})

	return "http://" + ln.Addr().String()
}

func TestHTTPClient_Fetch(t *testing.T) {
	var gotQuery, gotLanguage, gotService, gotAgent string
	endpoint := startKeywordServer(t, func(c *fiber.Ctx) error {
		gotQuery = c.Query("query")
		gotLanguage = c.Query("language")
		gotService = c.Query("service")
		gotAgent = c.Get(fiber.HeaderUserAgent)
		return c.Status(fiber.StatusGatewayTimeout).SendString(timeoutBody)
	})

	client := NewHTTPClient(ConnectionConfig{RequestTimeout: 5 * time.Second})
	defer client.Close()

	resp, err := client.Fetch(context.Background(), BuildQueryURL(endpoint, Query{Keyword: "big%20data", Language: "en", Country: "us"}))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.StatusCode != fiber.StatusGatewayTimeout {
		t.Errorf("Expected status 504, got %d", resp.StatusCode)
	}
	if string(resp.Body) != timeoutBody {
		t.Errorf("Unexpected body: %s", resp.Body)
	}
	if gotQuery != "big data" {
		t.Errorf("Expected query 'big data', got %q", gotQuery)
	}
	if gotLanguage != "en" || gotService != "i" {
		t.Errorf("Unexpected query parameters: language=%q service=%q", gotLanguage, gotService)
	}
	if gotAgent != DefaultUserAgent {
		t.Errorf("Expected user agent %s, got %s", DefaultUserAgent, gotAgent)
	}
}

func TestHTTPClient_ExpiredContext(t *testing.T) {
	client := NewHTTPClient(DefaultConnectionConfig())

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := client.Fetch(ctx, "http://127.0.0.1:1/prod/query")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
}
