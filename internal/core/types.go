package core

// Config represents the complete slackchat configuration structure
type Config struct {
	Slack      SlackConfig      `yaml:"slack"`
	Cache      CacheConfig      `yaml:"cache"`
	ReadMarker ReadMarkerConfig `yaml:"read_marker"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SlackConfig represents the Slack session configuration
type SlackConfig struct {
	Token    string `yaml:"token"`    // bot token (xoxb-...)
	Nickname string `yaml:"nickname"` // mention nickname; defaults to the whoami display name
}

// CacheConfig represents directory-cache configuration
type CacheConfig struct {
	TTL string `yaml:"ttl"` // e.g. "60s"
}

// ReadMarkerConfig represents mark-read throttling configuration
type ReadMarkerConfig struct {
	Interval string `yaml:"interval"` // e.g. "15s"
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level        string `yaml:"level"`         // debug, info, warn, error
	File         string `yaml:"file"`          // Log file path
	MaxSize      int    `yaml:"max_size"`      // Single file max size in MB (default: 100)
	MaxBackups   int    `yaml:"max_backups"`   // Number of backups to keep (default: 5)
	MaxAge       int    `yaml:"max_age"`       // Maximum days to retain (default: 30)
	Compress     bool   `yaml:"compress"`      // Whether to compress old logs (default: true)
	EnableStdout bool   `yaml:"enable_stdout"` // Also output to stdout (default: true)
}
