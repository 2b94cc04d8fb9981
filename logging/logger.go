package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
	FATAL
)

// String returns the string representation of the log level
func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	case FATAL:
		return "FATAL"
	default:
		return "UNKNOWN"
	}
}

// Color returns ANSI color codes for terminal output
func (l LogLevel) Color() string {
	switch l {
	case DEBUG:
		return "\033[36m" // Cyan
	case INFO:
		return "\033[32m" // Green
	case WARN:
		return "\033[33m" // Yellow
	case ERROR:
		return "\033[31m" // Red
	case FATAL:
		return "\033[35m" // Magenta
	default:
		return "\033[0m"
	}
}

// ParseLevel converts a string level to LogLevel, defaulting to INFO
func ParseLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	case "fatal":
		return FATAL
	default:
		return INFO
	}
}

// Config holds logger configuration options
type Config struct {
	Level       string // "debug", "info", "warn", "error", "fatal"
	Output      io.Writer
	Prefix      string
	EnableColor bool
}

// Logger is a leveled logger with an optional component prefix
type Logger struct {
	mu          sync.RWMutex
	level       LogLevel
	prefix      string
	enableColor bool
	out         *log.Logger
}

// New creates a new Logger instance
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Logger{
		level:       ParseLevel(config.Level),
		prefix:      config.Prefix,
		enableColor: config.EnableColor,
		out:         log.New(config.Output, "", 0),
	}
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// IsLevelEnabled checks if the given level is enabled
func (l *Logger) IsLevelEnabled(level LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return level >= l.level
}

// WithPrefix returns a new logger whose prefix is extended with the given component name
func (l *Logger) WithPrefix(prefix string) *Logger {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.prefix != "" {
		prefix = l.prefix + ":" + prefix
	}
	return &Logger{
		level:       l.level,
		prefix:      prefix,
		enableColor: l.enableColor,
		out:         l.out,
	}
}

func (l *Logger) format(level LogLevel, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")

	var colorStart, colorEnd string
	if l.enableColor {
		colorStart = level.Color()
		colorEnd = "\033[0m"
	}

	prefix := ""
	if l.prefix != "" {
		prefix = fmt.Sprintf("[%s] ", l.prefix)
	}

	return fmt.Sprintf("%s%-5s %s %s%s%s", colorStart, level.String(), timestamp, prefix, message, colorEnd)
}

func (l *Logger) write(level LogLevel, message string) {
	if !l.IsLevelEnabled(level) {
		return
	}

	l.mu.RLock()
	l.out.Print(l.format(level, message))
	l.mu.RUnlock()

	if level == FATAL {
		os.Exit(1)
	}
}

// Debug logs a message at DEBUG level
func (l *Logger) Debug(args ...interface{}) { l.write(DEBUG, fmt.Sprint(args...)) }

// Debugf logs a formatted message at DEBUG level
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.write(DEBUG, fmt.Sprintf(format, args...))
}

// Info logs a message at INFO level
func (l *Logger) Info(args ...interface{}) { l.write(INFO, fmt.Sprint(args...)) }

// Infof logs a formatted message at INFO level
func (l *Logger) Infof(format string, args ...interface{}) {
	l.write(INFO, fmt.Sprintf(format, args...))
}

// Warn logs a message at WARN level
func (l *Logger) Warn(args ...interface{}) { l.write(WARN, fmt.Sprint(args...)) }

// Warnf logs a formatted message at WARN level
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.write(WARN, fmt.Sprintf(format, args...))
}

// Error logs a message at ERROR level
func (l *Logger) Error(args ...interface{}) { l.write(ERROR, fmt.Sprint(args...)) }

// Errorf logs a formatted message at ERROR level
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.write(ERROR, fmt.Sprintf(format, args...))
}

// Fatal logs a message at FATAL level and exits the program
func (l *Logger) Fatal(args ...interface{}) { l.write(FATAL, fmt.Sprint(args...)) }

// Fatalf logs a formatted message at FATAL level and exits the program
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.write(FATAL, fmt.Sprintf(format, args...))
}
