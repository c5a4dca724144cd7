package core

import "errors"

// LogLevel represents logging severity levels
type LogLevel int

const (
	// LogLevelDebug for detailed debug information
	LogLevelDebug LogLevel = iota
	// LogLevelInfo for general operational information
	LogLevelInfo
	// LogLevelWarn for warnings
	LogLevelWarn
	// LogLevelError for errors information
	LogLevelError
)

// ParseLogLevel converts a config string into a LogLevel, defaulting to info
func ParseLogLevel(level string) LogLevel {
	switch level {
	case "debug":
		return LogLevelDebug
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger defines logging operations
type Logger interface {
	// SetLevel sets the minimum log level to output
	SetLevel(level LogLevel)
	// GetLevel gets the current log level
	GetLevel() LogLevel
	// Debug logs debug messages
	Debug(message string, fields map[string]any)
	// Info logs informational messages
	Info(message string, fields map[string]any)
	// Warn logs warning messages
	Warn(message string, fields map[string]any)
	// Error logs errors messages
	Error(message string, fields map[string]any)
	// Flush ensures all buffered logs are written to their destination
	Flush() error
}

// LogFielder is implemented by errors that carry their own structured fields
type LogFielder interface {
	LogFields() map[string]any
}

// ErrorFields builds log fields for err, merging in extra.
// Typed domain errors contribute their LogFields.
func ErrorFields(err error, extra map[string]any) map[string]any {
	fields := make(map[string]any, len(extra)+4)
	if err != nil {
		var fielder LogFielder
		if errors.As(err, &fielder) {
			for k, v := range fielder.LogFields() {
				fields[k] = v
			}
		}
		fields["error"] = err.Error()
	}
	for k, v := range extra {
		fields[k] = v
	}
	return fields
}
