// Package core provides configuration loading for slackchat.
//
// Configuration is loaded from a YAML file with ${VAR} environment
// expansion, then validated with defaults filled in:
//
//	slack:
//	  token: "${SLACK_TOKEN}"
//	  nickname: "bot"
//	cache:
//	  ttl: "60s"
//	read_marker:
//	  interval: "15s"
//	logging:
//	  level: "info"
//	  file: "/var/log/slackchat/slackchat.log"
package core

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zostay/slackchat/pkg/constants"
)

const (
	DefaultLogLevel        = "info"
	DefaultLogCompress     = true
	DefaultLogEnableStdout = true

	DefaultCacheTTL     = "60s"
	DefaultMarkInterval = "15s"
)

// LoadConfig loads configuration from file and expands environment variables
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expandedData, err := expandEnv(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to expand environment variables: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// expandEnv replaces ${VAR_NAME} patterns with environment variable values
func expandEnv(input string) (string, error) {
	var missingVars []string

	result := os.Expand(input, func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		missingVars = append(missingVars, key)
		return "" // Return empty string to let config parsing fail
	})

	if len(missingVars) > 0 {
		return "", fmt.Errorf("missing required environment variables: %s",
			strings.Join(missingVars, ", "))
	}

	return result, nil
}

// validateConfig performs basic validation on the configuration
func validateConfig(config *Config) error {
	if config.Slack.Token == "" {
		return fmt.Errorf("slack.token is required")
	}

	if config.Cache.TTL == "" {
		config.Cache.TTL = DefaultCacheTTL
	}
	ttl, err := time.ParseDuration(config.Cache.TTL)
	if err != nil {
		return fmt.Errorf("invalid cache.ttl: %w", err)
	}
	if ttl <= 0 {
		return fmt.Errorf("cache.ttl must be positive (got %v)", ttl)
	}
	if ttl > time.Hour {
		return fmt.Errorf("cache.ttl is too large (max 1h, got %v); a long TTL serves stale identities", ttl)
	}

	if config.ReadMarker.Interval == "" {
		config.ReadMarker.Interval = DefaultMarkInterval
	}
	interval, err := time.ParseDuration(config.ReadMarker.Interval)
	if err != nil {
		return fmt.Errorf("invalid read_marker.interval: %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("read_marker.interval must be positive (got %v)", interval)
	}

	if config.Logging.Level == "" {
		config.Logging.Level = DefaultLogLevel
	}
	if config.Logging.MaxSize == 0 {
		config.Logging.MaxSize = constants.DefaultLogMaxSize
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = constants.DefaultLogMaxBackups
	}
	if config.Logging.MaxAge == 0 {
		config.Logging.MaxAge = constants.DefaultLogMaxAge
	}
	if !config.Logging.Compress {
		config.Logging.Compress = DefaultLogCompress
	}
	if !config.Logging.EnableStdout {
		config.Logging.EnableStdout = DefaultLogEnableStdout
	}

	return nil
}

// CacheTTL returns the parsed cache TTL. Call after LoadConfig has
// validated the value.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return constants.DefaultCacheTTL
	}
	return d
}

// MarkInterval returns the parsed mark-read throttle interval.
func (c *Config) MarkInterval() time.Duration {
	d, err := time.ParseDuration(c.ReadMarker.Interval)
	if err != nil {
		return constants.ReadMarkInterval
	}
	return d
}
