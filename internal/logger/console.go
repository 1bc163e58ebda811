// Package logger provides the colored console output for convmusic.
//
// All user-facing messages go through a ConsoleLogger, which prefixes each
// line with a colored severity tag ([INFO], [WARN], [ERROR], [SUCCESS]) and
// supports log level filtering. Implementations are thread-safe.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering
const (
	levelDebug int = 0
	levelInfo  int = 1
	levelWarn  int = 2
	levelError int = 3
)

// ConsoleLogger writes severity-tagged messages to a writer with thread
// safety. Color output is automatically enabled for terminal output
// (os.Stdout/os.Stderr) and disabled everywhere else.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// logLevel determines the minimum log level for messages to be output.
// Valid levels: debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok && (f == os.Stdout || f == os.Stderr) {
		// color.NoColor also covers the NO_COLOR env var
		return isatty.IsTerminal(f.Fd()) && !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if validLevels[normalized] {
		return normalized
	}

	return "info" // Default level
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel int) bool {
	return messageLevel >= logLevelToInt(cl.logLevel)
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debug logs a debug-level message.
// Format: "[DEBUG] <message>"
func (cl *ConsoleLogger) Debug(format string, args ...interface{}) {
	cl.log(levelDebug, "DEBUG", color.FgHiBlack, format, args...)
}

// Info logs an info-level message.
// Format: "[INFO] <message>"
func (cl *ConsoleLogger) Info(format string, args ...interface{}) {
	cl.log(levelInfo, "INFO", color.FgBlue, format, args...)
}

// Warn logs a warning-level message.
// Format: "[WARN] <message>"
func (cl *ConsoleLogger) Warn(format string, args ...interface{}) {
	cl.log(levelWarn, "WARN", color.FgYellow, format, args...)
}

// Error logs an error-level message.
// Format: "[ERROR] <message>"
func (cl *ConsoleLogger) Error(format string, args ...interface{}) {
	cl.log(levelError, "ERROR", color.FgRed, format, args...)
}

// Success logs a success message at info level.
// Format: "[SUCCESS] <message>"
func (cl *ConsoleLogger) Success(format string, args ...interface{}) {
	cl.log(levelInfo, "SUCCESS", color.FgGreen, format, args...)
}

// Plain writes an untagged line, subject to info-level filtering.
// Used for summary blocks and format tables where tags would be noise.
func (cl *ConsoleLogger) Plain(format string, args ...interface{}) {
	if cl.writer == nil || !cl.shouldLog(levelInfo) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprintf(cl.writer, format+"\n", args...)
}

// ColorEnabled reports whether this logger writes ANSI color codes.
func (cl *ConsoleLogger) ColorEnabled() bool {
	return cl.colorOutput
}

// log writes a tagged message if level filtering allows it.
func (cl *ConsoleLogger) log(level int, tag string, tagColor color.Attribute, format string, args ...interface{}) {
	if cl.writer == nil {
		return
	}
	if !cl.shouldLog(level) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	message := fmt.Sprintf(format, args...)
	if cl.colorOutput {
		coloredTag := color.New(tagColor).Sprintf("[%s]", tag)
		fmt.Fprintf(cl.writer, "%s %s\n", coloredTag, message)
	} else {
		fmt.Fprintf(cl.writer, "[%s] %s\n", tag, message)
	}
}

// NoOpLogger discards all log messages. Useful for testing or when
// logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// Debug is a no-op implementation.
func (n *NoOpLogger) Debug(format string, args ...interface{}) {}

// Info is a no-op implementation.
func (n *NoOpLogger) Info(format string, args ...interface{}) {}

// Warn is a no-op implementation.
func (n *NoOpLogger) Warn(format string, args ...interface{}) {}

// Error is a no-op implementation.
func (n *NoOpLogger) Error(format string, args ...interface{}) {}

// Success is a no-op implementation.
func (n *NoOpLogger) Success(format string, args ...interface{}) {}

// Plain is a no-op implementation.
func (n *NoOpLogger) Plain(format string, args ...interface{}) {}
