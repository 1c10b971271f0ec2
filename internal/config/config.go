package config

import (
	"time"

	"ubersuggest-go/pkg/api"
	"ubersuggest-go/pkg/logger"
)

type Config struct {
	Lookup LookupConfig  `mapstructure:"lookup"`
	HTTP   HTTPConfig    `mapstructure:"http"`
	Export ExportConfig  `mapstructure:"export"`
	Logger logger.Config `mapstructure:"logger"`
}

type LookupConfig struct {
	Keyword      string `mapstructure:"keyword"`
	Locale       string `mapstructure:"locale"`
	MaxResults   int    `mapstructure:"max_results"`
	Endpoint     string `mapstructure:"endpoint"`
	MaxAttempts  int    `mapstructure:"max_attempts"`
	RetryDelayMs int    `mapstructure:"retry_delay_ms"`
}

type HTTPConfig struct {
	TimeoutMs       int    `mapstructure:"timeout_ms"`
	UserAgent       string `mapstructure:"user_agent"`
	MaxConnsPerHost int    `mapstructure:"max_conns_per_host"`
}

type ExportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	Encoding  string `mapstructure:"encoding"`
}

// RetryDelay is the pause between attempts
func (c LookupConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMs) * time.Millisecond
}

// ConnectionConfig maps the http section onto the transport settings
func (c HTTPConfig) ConnectionConfig() api.ConnectionConfig {
	conn := api.DefaultConnectionConfig()
	if c.TimeoutMs > 0 {
		conn.RequestTimeout = time.Duration(c.TimeoutMs) * time.Millisecond
		conn.ReadTimeout = conn.RequestTimeout
	}
	if c.UserAgent != "" {
		conn.UserAgent = c.UserAgent
	}
	if c.MaxConnsPerHost > 0 {
		conn.MaxConnsPerHost = c.MaxConnsPerHost
	}
	return conn
}

type Manager interface {
	Load(configPath string) (*Config, error)
	Reload() error
	GetConfig() *Config
}
