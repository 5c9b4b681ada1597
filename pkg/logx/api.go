package logx

import (
	"fmt"
	"io"
)

var defaultLogger *Logger

func init() {
	defaultLogger = NewLogger(LoadFromEnv())
}

// SetDefaultLogger sets the default logger
func SetDefaultLogger(logger *Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the default logger
func GetDefaultLogger() *Logger {
	return defaultLogger
}

// SetLevel sets the log level for the default logger
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetOutput sets the output for the default logger
func SetOutput(w io.Writer) {
	defaultLogger.SetOutput(w)
}

func Debug(msg string) { defaultLogger.log(LevelDebug, msg, nil, nil) }
func Info(msg string)  { defaultLogger.log(LevelInfo, msg, nil, nil) }
func Warn(msg string)  { defaultLogger.log(LevelWarn, msg, nil, nil) }
func Error(msg string) { defaultLogger.log(LevelError, msg, nil, nil) }

// Debugf logs a formatted debug message
func Debugf(format string, args ...interface{}) {
	defaultLogger.log(LevelDebug, fmt.Sprintf(format, args...), nil, nil)
}

// Infof logs a formatted info message
func Infof(format string, args ...interface{}) {
	defaultLogger.log(LevelInfo, fmt.Sprintf(format, args...), nil, nil)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	defaultLogger.log(LevelWarn, fmt.Sprintf(format, args...), nil, nil)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	defaultLogger.log(LevelError, fmt.Sprintf(format, args...), nil, nil)
}

// Fatalf logs a formatted fatal message and exits
func Fatalf(format string, args ...interface{}) {
	defaultLogger.log(LevelFatal, fmt.Sprintf(format, args...), nil, nil)
	defaultLogger.exit(1)
}

// WithFields creates a new logger entry with fields
func WithFields(fields Fields) *Entry {
	return defaultLogger.WithFields(fields)
}

// WithField creates a new logger entry with a single field
func WithField(key string, value interface{}) *Entry {
	return defaultLogger.WithField(key, value)
}

// WithError creates a new logger entry with an error
func WithError(err error) *Entry {
	return defaultLogger.WithError(err)
}
