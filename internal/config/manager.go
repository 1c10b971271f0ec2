package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"ubersuggest-go/pkg/api"
	"ubersuggest-go/pkg/storage"
	"ubersuggest-go/pkg/ubersuggest"
)

// EnvPrefix prefixes every environment override, e.g. UBERSUGGEST_LOOKUP_LOCALE
const EnvPrefix = "UBERSUGGEST"

type manager struct {
	mu         sync.RWMutex
	config     *Config
	viper      *viper.Viper
	configPath string
}

func NewManager() Manager {
	return &manager{
		viper: viper.New(),
	}
}

// Load reads defaults, an optional .env file, an optional config file and the
// environment, in increasing priority. An empty configPath skips the file.
func (m *manager) Load(configPath string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// .env is optional; variables may come from the real environment
	_ = godotenv.Load()

	m.configPath = configPath
	m.setupViper()

	config, err := m.read()
	if err != nil {
		return nil, err
	}

	m.config = config
	return config, nil
}

func (m *manager) Reload() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config == nil {
		return fmt.Errorf("config not loaded")
	}

	config, err := m.read()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}

	m.config = config
	return nil
}

func (m *manager) GetConfig() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *manager) read() (*Config, error) {
	if m.configPath != "" {
		if err := m.viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := m.viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

func (m *manager) setupViper() {
	defaults := api.DefaultConnectionConfig()

	m.viper.SetDefault("lookup.keyword", "")
	m.viper.SetDefault("lookup.locale", ubersuggest.DefaultLocale)
	m.viper.SetDefault("lookup.max_results", ubersuggest.DefaultResults)
	m.viper.SetDefault("lookup.endpoint", api.DefaultEndpoint)
	m.viper.SetDefault("lookup.max_attempts", api.DefaultMaxAttempts)
	m.viper.SetDefault("lookup.retry_delay_ms", 0)
	m.viper.SetDefault("http.timeout_ms", defaults.RequestTimeout.Milliseconds())
	m.viper.SetDefault("http.user_agent", defaults.UserAgent)
	m.viper.SetDefault("http.max_conns_per_host", defaults.MaxConnsPerHost)
	m.viper.SetDefault("export.output_dir", "")
	m.viper.SetDefault("export.encoding", storage.DefaultEncoding)
	m.viper.SetDefault("logger.level", "warn")
	m.viper.SetDefault("logger.format", "json")
	m.viper.SetDefault("logger.output", "stderr")
	m.viper.SetDefault("logger.time_format", "")

	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	}

	m.viper.SetEnvPrefix(EnvPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
}

func validateConfig(config *Config) error {
	if config.Lookup.MaxResults <= 0 {
		return fmt.Errorf("max_results must be positive")
	}

	if config.Lookup.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be positive")
	}

	if config.Lookup.RetryDelayMs < 0 {
		return fmt.Errorf("retry_delay_ms cannot be negative")
	}

	if config.HTTP.TimeoutMs <= 0 {
		return fmt.Errorf("timeout_ms must be positive")
	}

	if config.Lookup.Endpoint == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}

	if _, _, err := ubersuggest.ParseLocale(config.Lookup.Locale); err != nil {
		return err
	}

	if _, err := storage.ParseEncoding(config.Export.Encoding); err != nil {
		return err
	}

	return nil
}
