package logx

import (
	"io"
	"os"
	"strings"
	"time"
)

// Format represents the output format
type Format string

const (
	// FormatConsole outputs colored console logs (default)
	FormatConsole Format = "console"
	// FormatJSON outputs one JSON object per line
	FormatJSON Format = "json"
)

// Config holds the logger configuration
type Config struct {
	// Level is the minimum log level to output
	Level Level

	// Format is the output format
	Format Format

	// EnableColors enables colored output (only for console format)
	EnableColors bool

	// EnableCaller adds file and line number to logs
	EnableCaller bool

	// EnableTimestamp adds timestamp to logs
	EnableTimestamp bool

	// TimeFormat is the time format to use (defaults to RFC3339)
	TimeFormat string

	// Redact lists field keys whose values are masked before formatting.
	// Matching is case-insensitive.
	Redact []string

	// Output is where to write logs (defaults to os.Stdout)
	Output io.Writer
}

// DefaultRedactedFields are masked unless a config overrides Redact.
var DefaultRedactedFields = []string{"password", "pass", "secret", "authorization", "token"}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Level:           LevelInfo,
		Format:          FormatConsole,
		EnableColors:    true,
		EnableCaller:    false,
		EnableTimestamp: true,
		TimeFormat:      time.RFC3339,
		Redact:          DefaultRedactedFields,
		Output:          os.Stdout,
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	config := DefaultConfig()

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = ParseLevel(level)
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		switch strings.ToLower(format) {
		case "json":
			config.Format = FormatJSON
		case "console":
			config.Format = FormatConsole
		}
	}

	if color := os.Getenv("LOG_COLOR"); color != "" {
		config.EnableColors = strings.ToLower(color) == "true" || color == "1"
	}

	if caller := os.Getenv("LOG_CALLER"); caller != "" {
		config.EnableCaller = strings.ToLower(caller) == "true" || caller == "1"
	}

	if timeFormat := os.Getenv("LOG_TIME_FORMAT"); timeFormat != "" {
		switch strings.ToUpper(timeFormat) {
		case "RFC3339":
			config.TimeFormat = time.RFC3339
		case "RFC3339NANO":
			config.TimeFormat = time.RFC3339Nano
		case "UNIX":
			config.TimeFormat = "unix"
		case "UNIXMILLI":
			config.TimeFormat = "unixmilli"
		default:
			config.TimeFormat = timeFormat
		}
	}

	return config
}
