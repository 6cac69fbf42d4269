package constants

import "time"

// Cache and throttling defaults
const (
	// DefaultCacheTTL is how long a resolved directory payload stays cached.
	// Kept short: the cache exists to avoid hammering a rate-limited API,
	// not to be a source of truth.
	DefaultCacheTTL = 60 * time.Second
	// ReadMarkInterval is the minimum time between mark-read calls
	ReadMarkInterval = 15 * time.Second
)

// Message length limits
const (
	// MaxSlackMessageLength is Slack's character limit for chat.postMessage
	MaxSlackMessageLength = 40000
)

// Event buffer sizes
const (
	// EventChannelBufferSize is the buffer size for the inbound event channel
	EventChannelBufferSize = 100
)

// Token masking
const (
	// MinTokenLengthForMasking is the minimum token length to apply masking
	MinTokenLengthForMasking = 10
	// TokenMaskPrefixLength is the length of prefix to show before masking
	TokenMaskPrefixLength = 7
	// TokenMaskSuffixLength is the length of suffix to show after masking
	TokenMaskSuffixLength = 4
)

// Logging defaults
const (
	// DefaultLogMaxSize is the default maximum log file size in MB
	DefaultLogMaxSize = 100
	// DefaultLogMaxBackups is the default number of rotated files to keep
	DefaultLogMaxBackups = 5
	// DefaultLogMaxAge is the default maximum number of days to retain old logs
	DefaultLogMaxAge = 30
)
