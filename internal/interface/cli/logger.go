package cli

import (
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the minimum severity written to stderr
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
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

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// Logger provides centralized logging with level control on top of a
// sugared zap logger
type Logger struct {
	mu       sync.RWMutex
	minLevel LogLevel
	level    zap.AtomicLevel
	output   io.Writer
	sugar    *zap.SugaredLogger
}

// NewLogger creates a new logger with the specified minimum level
func NewLogger(minLevel LogLevel, output io.Writer) *Logger {
	l := &Logger{
		minLevel: minLevel,
		level:    zap.NewAtomicLevelAt(minLevel.zapLevel()),
	}
	l.setOutput(output)
	return l
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.NameKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.ConsoleSeparator = ": "
	return cfg
}

// setOutput rebuilds the zap core around output; caller holds mu or owns l
func (l *Logger) setOutput(output io.Writer) {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.AddSync(output),
		l.level,
	)
	l.output = output
	l.sugar = zap.New(core).Sugar()
}

// SetLevel changes the minimum log level
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.minLevel = level
	l.level.SetLevel(level.zapLevel())
}

// GetLevel returns the current minimum log level
func (l *Logger) GetLevel() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.minLevel
}

// SetOutput changes the output writer
func (l *Logger) SetOutput(output io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setOutput(output)
}

func (l *Logger) logger() *zap.SugaredLogger {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sugar
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logger().Debugf(format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.logger().Infof(format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logger().Warnf(format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.logger().Errorf(format, args...)
}

// Sync flushes buffered log entries
func (l *Logger) Sync() error {
	return l.logger().Sync()
}

// LogLevelFromString converts a string to LogLevel with better defaults
func LogLevelFromString(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error", "fatal":
		return LogLevelError
	default:
		// Default to WARN level if not specified or invalid
		return LogLevelWarn
	}
}

// Global logger instance
var globalLogger *Logger

// InitGlobalLogger initializes the global logger
func InitGlobalLogger(level string) {
	globalLogger = NewLogger(LogLevelFromString(level), os.Stderr)
}

// GetLogger returns the global logger instance
func GetLogger() *Logger {
	if globalLogger == nil {
		InitGlobalLogger("warn")
	}
	return globalLogger
}
