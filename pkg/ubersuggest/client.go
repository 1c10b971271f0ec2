// Package ubersuggest queries the Ubersuggest keyword service and reshapes its
// results: search volume, CPC, competition, related keywords, monthly search
// statistics and CSV exports.
//
// A Client is not safe for concurrent use. LookUp must succeed before any of
// the derived accessors can be used.
package ubersuggest

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ubersuggest-go/pkg/api"
	"ubersuggest-go/pkg/logger"
	"ubersuggest-go/pkg/storage"
)

type (
	KeywordRecord     = api.KeywordRecord
	MonthStat         = api.MonthStat
	KeywordStatistics = api.KeywordStatistics
)

type status int

const (
	statusUninitialized status = iota
	statusReady
)

// Client holds the keyword, the locale and the results of the last
// successful lookup
type Client struct {
	keyword  string
	language string
	country  string

	status          status
	results         []KeywordRecord
	relatedKeywords []string

	api      *api.KeywordAPI
	exporter *storage.CSVExporter
	log      *logger.Logger
}

// New creates a client for keyword. An empty keyword is accepted here and
// rejected by LookUp.
func New(keyword string, opts ...Option) (*Client, error) {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	if s.log == nil {
		s.log = logger.GetLogger()
	}
	if s.fetcher == nil {
		s.fetcher = api.NewHTTPClient(s.connConfig)
	}

	exporter, err := storage.NewCSVExporter(s.outputDir, s.csvEncoding)
	if err != nil {
		return nil, err
	}

	c := &Client{
		api:      api.NewKeywordAPI(s.endpoint, s.fetcher, api.NewFixedRetry(s.maxAttempts, s.retryDelay).WithSleep(s.sleep)),
		exporter: exporter,
		log:      s.log.WithField("component", "ubersuggest_client"),
	}
	c.SetKeyword(keyword)
	if err := c.SetLocale(s.locale); err != nil {
		return nil, err
	}

	return c, nil
}

// SetKeyword replaces the keyword used by the next lookup. Spaces become %20
// so the value can go straight into the query string.
func (c *Client) SetKeyword(keyword string) {
	c.keyword = strings.ReplaceAll(keyword, " ", "%20")
}

// SetLocale replaces language and country. An empty locale resets to
// DefaultLocale.
func (c *Client) SetLocale(locale string) error {
	lang, country, err := ParseLocale(locale)
	if err != nil {
		return err
	}
	c.language = lang
	c.country = country
	return nil
}

func (c *Client) Keyword() string {
	return c.keyword
}

func (c *Client) Language() string {
	return c.language
}

func (c *Client) Country() string {
	return c.country
}

// Executed reports whether a lookup has succeeded
func (c *Client) Executed() bool {
	return c.status == statusReady
}

// phrase is the keyword as the service spells it back
func (c *Client) phrase() string {
	return strings.ReplaceAll(c.keyword, "%20", " ")
}

// LookUp queries the service and stores every processed and unprocessed
// keyword. It returns at most MaxResults records (DefaultResults unless set).
// On failure the previous results are kept.
func (c *Client) LookUp(ctx context.Context, opts ...LookupOption) ([]KeywordRecord, error) {
	ls := lookupSettings{maxResults: DefaultResults}
	for _, opt := range opts {
		opt(&ls)
	}

	if c.keyword == "" {
		return nil, ErrNoKeywordSupplied
	}

	results, err := c.api.Query(ctx, api.Query{
		Keyword:  c.keyword,
		Language: c.language,
		Country:  c.country,
	}, ls.tries)
	if err != nil {
		if errors.Is(err, api.ErrAttemptsExhausted) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("look up %q: %w", c.keyword, err)
	}

	c.results = results.ProcessedKeywords
	c.relatedKeywords = results.UnprocessedKeywords
	c.status = statusReady

	c.log.WithFields(map[string]interface{}{
		"keyword":  c.keyword,
		"locale":   c.language + "-" + c.country,
		"results":  len(c.results),
		"related":  len(c.relatedKeywords),
		"returned": min(max(ls.maxResults, 0), len(c.results)),
	}).Info("Look up completed")

	return c.limit(ls.maxResults), nil
}

func (c *Client) limit(n int) []KeywordRecord {
	if n < 0 {
		n = 0
	}
	if n > len(c.results) {
		n = len(c.results)
	}
	out := make([]KeywordRecord, n)
	copy(out, c.results[:n])
	return out
}
