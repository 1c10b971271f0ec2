package api

import (
	"context"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"ubersuggest-go/pkg/logger"
)

// DefaultUserAgent identifies the client to the keyword service
const DefaultUserAgent = "ubersuggest-go/1.0"

// ConnectionConfig holds configuration for the outbound HTTP connection
type ConnectionConfig struct {
	RequestTimeout      time.Duration `json:"request_timeout"`
	ReadTimeout         time.Duration `json:"read_timeout"`
	WriteTimeout        time.Duration `json:"write_timeout"`
	MaxConnsPerHost     int           `json:"max_conns_per_host"`
	MaxIdleConnDuration time.Duration `json:"max_idle_conn_duration"`
	UserAgent           string        `json:"user_agent"`
}

// DefaultConnectionConfig returns settings suited to one request at a time
// against a slow API gateway
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		RequestTimeout:      60 * time.Second,
		ReadTimeout:         60 * time.Second,
		WriteTimeout:        10 * time.Second,
		MaxConnsPerHost:     4,
		MaxIdleConnDuration: 30 * time.Second,
		UserAgent:           DefaultUserAgent,
	}
}

// HTTPClient fetches keyword service responses over fasthttp
type HTTPClient struct {
	config ConnectionConfig
	client *fasthttp.Client
	log    *logger.Logger
}

// NewHTTPClient creates a fasthttp-backed Fetcher
func NewHTTPClient(config ConnectionConfig) *HTTPClient {
	defaults := DefaultConnectionConfig()
	if config.RequestTimeout <= 0 {
		config.RequestTimeout = defaults.RequestTimeout
	}
	if config.UserAgent == "" {
		config.UserAgent = defaults.UserAgent
	}

	return &HTTPClient{
		config: config,
		client: &fasthttp.Client{
			Name:                config.UserAgent,
			ReadTimeout:         config.ReadTimeout,
			WriteTimeout:        config.WriteTimeout,
			MaxConnsPerHost:     config.MaxConnsPerHost,
			MaxIdleConnDuration: config.MaxIdleConnDuration,
		},
		log: logger.GetLogger().WithField("component", "http_client"),
	}
}

// Fetch issues a GET and returns the status and a copy of the body. Non-200
// responses are not errors here; the body decides.
func (h *HTTPClient) Fetch(ctx context.Context, rawURL string) (*RawResponse, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rawURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.SetUserAgent(h.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	timeout := h.config.RequestTimeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, context.DeadlineExceeded
		}
		if remaining < timeout {
			timeout = remaining
		}
	}

	if err := h.client.DoTimeout(req, resp, timeout); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())

	h.log.WithFields(map[string]interface{}{
		"status": resp.StatusCode(),
		"bytes":  len(body),
	}).Debug("Keyword service responded")

	return &RawResponse{
		StatusCode: resp.StatusCode(),
		Body:       body,
	}, nil
}

// Close releases idle connections
func (h *HTTPClient) Close() {
	h.client.CloseIdleConnections()
}
