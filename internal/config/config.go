// Package config loads scanner settings from a YAML credentials file with
// environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	bwsio "bsc-wallet-scanner/internal/io"
)

const envPrefix = "SCANNER"

// Config represents the scanner configuration. The API key is the only
// required value; everything else has a workable default.
type Config struct {
	APIKey           string `mapstructure:"api_key"`
	BaseURL          string `mapstructure:"base_url"`
	RateLimit        int    `mapstructure:"rate_limit"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"`
	MaxRetries       int    `mapstructure:"max_retries"`
	BackoffInitialMs int    `mapstructure:"backoff_initial_ms"`
	PageSize         int    `mapstructure:"page_size"`
	MaxResults       int    `mapstructure:"max_results"`
	OutputDir        string `mapstructure:"output_dir"`
}

// ErrMissingAPIKey indicates no API key was found in the credentials file or
// the environment.
var ErrMissingAPIKey = errors.New("api key is not configured")

// Load reads configuration from the file at explicitPath when non-empty,
// otherwise from credentials/bscscan.yaml relative to the working directory.
// Environment variables prefixed with SCANNER_ (e.g. SCANNER_API_KEY)
// override file values.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()

	if explicitPath != "" {
		exists, err := bwsio.FileExists(explicitPath)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("configuration file not found: %s", explicitPath)
		}
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("bscscan")
		v.SetConfigType("yaml")
		v.AddConfigPath("credentials")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// env-only configuration is acceptable; a broken file is not
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// api_key must be registered for an env-only SCANNER_API_KEY to survive
	// Unmarshal; viper only unmarshals keys it knows about.
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "https://api.bscscan.com/api")
	v.SetDefault("rate_limit", 5)
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("max_retries", 3)
	v.SetDefault("backoff_initial_ms", 500)
	v.SetDefault("page_size", 1000)
	v.SetDefault("max_results", 10000)
	v.SetDefault("output_dir", "result")
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// InitialBackoff returns the delay before the first retry.
func (c *Config) InitialBackoff() time.Duration {
	return time.Duration(c.BackoffInitialMs) * time.Millisecond
}
