package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`

	// view server; it serves the session of a single user, so it only binds to loopback
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`

	// backend REST API
	ApiBaseURL             string `toml:"api_base_url"`
	ApiTimeoutSeconds      int    `toml:"api_timeout_seconds"`
	ApiRetryDelayMillis    int    `toml:"api_retry_delay_millis"`
	UseUserDataEndpoint    bool   `toml:"use_user_data_endpoint"`
	ExerciseSearchCacheTTL int    `toml:"exercise_search_cache_ttl_seconds"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
}

func (c *Config) ApiTimeout() time.Duration {
	return time.Duration(c.ApiTimeoutSeconds) * time.Second
}

func (c *Config) ApiRetryDelay() time.Duration {
	return time.Duration(c.ApiRetryDelayMillis) * time.Millisecond
}

func (c *Config) Validate() error {
	if c.ApiBaseURL == "" {
		return errors.New("api_base_url not set")
	}
	if c.Port <= 0 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if !isLoopbackHost(c.Host) {
		return fmt.Errorf("host [%s] is not a loopback address", c.Host)
	}
	if c.ApiTimeoutSeconds < 0 || c.ApiRetryDelayMillis < 0 || c.ExerciseSearchCacheTTL < 0 {
		return errors.New("durations cannot be negative")
	}
	return nil
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config section for env.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in [%s]", env, path)
	}
	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config for env [%s]: %w", env, err)
	}

	return cfg, nil
}
