package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogLevel represents a log level
type LogLevel int

const (
	LogLevelDiag LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case LogLevelDiag:
		return "diag"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger manages dbtestkit diagnostics. Output goes to the error stream by
// default so it never interferes with test-framework stdout capture.
type Logger struct {
	levels map[LogLevel]bool
	writer io.Writer
}

// NewLogger creates a new logger writing to the given writer
func NewLogger(levels []string, writer io.Writer) *Logger {
	logger := &Logger{
		levels: make(map[LogLevel]bool),
		writer: writer,
	}

	for _, level := range levels {
		level = strings.ToLower(strings.TrimSpace(level))
		switch level {
		case "diag", "diagnostic":
			logger.levels[LogLevelDiag] = true
		case "info":
			logger.levels[LogLevelInfo] = true
		case "warn", "warning":
			logger.levels[LogLevelWarn] = true
		case "error":
			logger.levels[LogLevelError] = true
		}
	}

	return logger
}

// Default returns a logger with all levels enabled, writing to stderr.
func Default() *Logger {
	return NewLogger([]string{"diag", "info", "warn", "error"}, os.Stderr)
}

// Writer returns the destination writer
func (l *Logger) Writer() io.Writer {
	return l.writer
}

// Diag emits a bare diagnostic line with no timestamp or level prefix.
// Test harness output conventions expect the raw line.
func (l *Logger) Diag(format string, args ...interface{}) {
	if !l.levels[LogLevelDiag] {
		return
	}
	fmt.Fprintf(l.writer, format+"\n", args...)
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if !l.levels[LogLevelInfo] {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.writer, "[%s] [INFO] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Warn logs a warning
func (l *Logger) Warn(format string, args ...interface{}) {
	if !l.levels[LogLevelWarn] {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.writer, "[%s] [WARN] %s\n", timestamp, fmt.Sprintf(format, args...))
}

// Error logs an error
func (l *Logger) Error(format string, args ...interface{}) {
	if !l.levels[LogLevelError] {
		return
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.writer, "[%s] [ERROR] %s\n", timestamp, fmt.Sprintf(format, args...))
}
