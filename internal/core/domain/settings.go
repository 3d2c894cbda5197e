package domain

import (
	"fmt"
	"strings"
	"time"
)

const unknownDescription = "Unknown"

// LogLevel is the minimum severity written by the process logger.
type LogLevel string

// Available log levels.
const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid returns true if the log level is recognised.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l LogLevel) String() string {
	return string(l)
}

// LogFormat selects the log handler encoding.
type LogFormat string

// Available log formats.
const (
	// LogFormatText writes key=value lines.
	LogFormatText LogFormat = "text"

	// LogFormatJSON writes one JSON object per line.
	LogFormatJSON LogFormat = "json"
)

// IsValid returns true if the log format is recognised.
func (f LogFormat) IsValid() bool {
	return f == LogFormatText || f == LogFormatJSON
}

// String returns the string representation.
func (f LogFormat) String() string {
	return string(f)
}

// Description returns a human-readable description of the format.
func (f LogFormat) Description() string {
	switch f {
	case LogFormatText:
		return "Text (key=value)"
	case LogFormatJSON:
		return "JSON (one object per line)"
	default:
		return unknownDescription
	}
}

// StorageSettings configures the embedded database.
type StorageSettings struct {
	// DataDir is the directory holding database.db.
	DataDir string
}

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// RequestTimeout bounds each request's context.
	RequestTimeout time.Duration

	// RateLimit is the sustained requests per second. Zero disables limiting.
	RateLimit float64

	// RateBurst is the token bucket size.
	RateBurst int
}

// LogSettings configures the process logger.
type LogSettings struct {
	Level  LogLevel
	Format LogFormat

	// File is an optional log file path. Empty logs to stderr.
	File string

	// MaxSizeMB is the size at which the log file is rotated.
	MaxSizeMB int

	// MaxFiles is the number of rotated files kept.
	MaxFiles int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage StorageSettings
	Server  ServerSettings
	Log     LogSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			DataDir: "data",
		},
		Server: ServerSettings{
			Addr:           ":3000",
			RequestTimeout: 10 * time.Second,
			RateLimit:      50,
			RateBurst:      100,
		},
		Log: LogSettings{
			Level:     LogLevelInfo,
			Format:    LogFormatText,
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
	}
}

// Validate checks the settings for values the application cannot run with.
func (s *AppSettings) Validate() error {
	var problems []string

	if strings.TrimSpace(s.Storage.DataDir) == "" {
		problems = append(problems, "storage.data_dir is empty")
	}
	if strings.TrimSpace(s.Server.Addr) == "" {
		problems = append(problems, "server.addr is empty")
	}
	if s.Server.RequestTimeout <= 0 {
		problems = append(problems, "server.request_timeout_seconds must be positive")
	}
	if s.Server.RateLimit < 0 {
		problems = append(problems, "server.rate_limit must not be negative")
	}
	if s.Server.RateLimit > 0 && s.Server.RateBurst <= 0 {
		problems = append(problems, "server.rate_burst must be positive when rate limiting")
	}
	if !s.Log.Level.IsValid() {
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", s.Log.Level))
	}
	if !s.Log.Format.IsValid() {
		problems = append(problems, fmt.Sprintf("log.format %q is not one of text, json", s.Log.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// AllLogLevels returns all available log levels.
func AllLogLevels() []LogLevel {
	return []LogLevel{LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError}
}
