package ubersuggest

import (
	"time"

	"ubersuggest-go/pkg/api"
	"ubersuggest-go/pkg/logger"
)

// DefaultResults is how many records LookUp returns when no limit is given
const DefaultResults = 50

type settings struct {
	locale      string
	endpoint    string
	fetcher     api.Fetcher
	connConfig  api.ConnectionConfig
	maxAttempts int
	retryDelay  time.Duration
	sleep       api.SleepFunc
	outputDir   string
	csvEncoding string
	log         *logger.Logger
}

func defaultSettings() settings {
	return settings{
		locale:      DefaultLocale,
		endpoint:    api.DefaultEndpoint,
		connConfig:  api.DefaultConnectionConfig(),
		maxAttempts: api.DefaultMaxAttempts,
	}
}

// Option configures a Client
type Option func(*settings)

// WithLocale sets the initial "<language>-<country>" locale
func WithLocale(locale string) Option {
	return func(s *settings) { s.locale = locale }
}

// WithEndpoint points the client at another host serving /prod/query
func WithEndpoint(endpoint string) Option {
	return func(s *settings) { s.endpoint = endpoint }
}

// WithFetcher replaces the HTTP transport
func WithFetcher(fetcher api.Fetcher) Option {
	return func(s *settings) { s.fetcher = fetcher }
}

// WithConnectionConfig tunes the default fasthttp transport
func WithConnectionConfig(config api.ConnectionConfig) Option {
	return func(s *settings) { s.connConfig = config }
}

// WithRetry sets the total attempt budget and the pause between attempts
func WithRetry(maxAttempts int, delay time.Duration) Option {
	return func(s *settings) {
		s.maxAttempts = maxAttempts
		s.retryDelay = delay
	}
}

// WithSleep replaces the wait used between attempts
func WithSleep(sleep api.SleepFunc) Option {
	return func(s *settings) { s.sleep = sleep }
}

// WithOutputDir sets where CSV files are written. Empty means the current
// working directory.
func WithOutputDir(dir string) Option {
	return func(s *settings) { s.outputDir = dir }
}

// WithCSVEncoding sets the CSV charset, e.g. "utf-8-bom" or "windows-1252"
func WithCSVEncoding(name string) Option {
	return func(s *settings) { s.csvEncoding = name }
}

// WithLogger sets the client logger
func WithLogger(log *logger.Logger) Option {
	return func(s *settings) { s.log = log }
}

type lookupSettings struct {
	maxResults int
	tries      int
}

// LookupOption configures a single LookUp call
type LookupOption func(*lookupSettings)

// MaxResults caps how many records LookUp returns. Stored results are not
// truncated.
func MaxResults(n int) LookupOption {
	return func(s *lookupSettings) { s.maxResults = n }
}

// Tries sets how many attempts of the retry budget count as already used
func Tries(n int) LookupOption {
	return func(s *lookupSettings) { s.tries = n }
}
