package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/ncobase/envelope/config"
	"github.com/sirupsen/logrus"
)

// Key constants
const (
	VersionKey  = "version"
	ClientIPKey = "client_ip"
)

// Logger represents logger instance
type Logger struct {
	*logrus.Logger
	version string
	logFile *os.File
	logPath string
	stop    chan struct{}
	mu      sync.Mutex
}

var (
	// stdLogger is the global logger
	stdLogger *Logger
	// once ensures that the logger is initialized only once
	once sync.Once
)

// StdLogger returns the single logger instance
func StdLogger() *Logger {
	once.Do(func() {
		stdLogger = NewLogger()
	})
	return stdLogger
}

// NewLogger creates a standalone logger with a JSON formatter
func NewLogger() *Logger {
	l := &Logger{
		Logger: logrus.New(),
	}
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

// SetVersion sets the version for logging
func (l *Logger) SetVersion(v string) {
	l.version = v
}

// Init initializes the logger with the given configuration
func (l *Logger) Init(c *config.Logger) (func(), error) {
	if c == nil {
		return func() {}, nil
	}

	l.SetLevel(logrus.Level(c.Level))

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{})
	}

	switch c.Output {
	case "stdout":
		l.SetOutput(os.Stdout)
	case "stderr":
		l.SetOutput(os.Stderr)
	case "file":
		l.logPath = c.OutputFile
		if l.logPath != "" {
			if err := l.setupLogFile(); err != nil {
				return nil, err
			}
			l.stop = make(chan struct{})
			go l.periodicLogRotation(l.stop)
		}
	}

	l.AddHook(NewDesensitizer(c.SensitiveFields))

	var flushSentry func()
	if c.SentryDSN != "" {
		hook, err := NewSentryHook(c.SentryDSN, c.Environment, l.version)
		if err != nil {
			return nil, fmt.Errorf("error initializing Sentry hook: %w", err)
		}
		l.AddHook(hook)
		flushSentry = hook.Flush
	}

	// Return cleanup function
	return func() {
		if flushSentry != nil {
			flushSentry()
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.stop != nil {
			close(l.stop)
			l.stop = nil
		}
		if l.logFile != nil {
			_ = l.logFile.Close()
			l.logFile = nil
		}
	}, nil
}

// setupLogFile sets up the log file
func (l *Logger) setupLogFile() error {
	if err := os.MkdirAll(filepath.Dir(l.logPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return l.rotateLog()
}

// rotateLog rotates the log
func (l *Logger) rotateLog() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile != nil {
		if err := l.logFile.Close(); err != nil {
			return fmt.Errorf("failed to close current log file: %w", err)
		}
	}

	logFilePath := fmt.Sprintf("%s.%s.log", strings.TrimSuffix(l.logPath, ".log"), time.Now().Format("2006-01-02"))
	f, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return fmt.Errorf("failed to open new log file: %w", err)
	}

	l.logFile = f
	l.SetOutput(l.logFile)
	return nil
}

// periodicLogRotation rotates the log every 24 hours
func (l *Logger) periodicLogRotation(stop <-chan struct{}) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if err := l.rotateLog(); err != nil {
				l.Logger.Errorf("Error rotating log: %v", err)
			}
		}
	}
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}

	if ctx != nil {
		if traceID := getTraceID(ctx); traceID != "" {
			fields[traceKey] = traceID
		}
		if ip := getClientIP(ctx); ip != "" && ip != "unknown" {
			fields[ClientIPKey] = ip
		}
	}

	if l.version != "" {
		fields[VersionKey] = l.version
	}

	entry := l.WithFields(fields)
	if ctx != nil {
		entry = entry.WithContext(ctx)
	}
	return entry
}

// WithContextFields returns an entry with fields from context plus the given fields
func (l *Logger) WithContextFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return l.entryFromContext(ctx).WithFields(fields)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, args ...any) {
	l.entryFromContext(ctx).Debug(args...)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, args ...any) {
	l.entryFromContext(ctx).Info(args...)
}

// Warn logs a warn message
func (l *Logger) Warn(ctx context.Context, args ...any) {
	l.entryFromContext(ctx).Warn(args...)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, args ...any) {
	l.entryFromContext(ctx).Error(args...)
}

// Infof logs an info message with format
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Infof(format, args...)
}

// Warnf logs a warn message with format
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Warnf(format, args...)
}

// Errorf logs an error message with format
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.entryFromContext(ctx).Errorf(format, args...)
}

// SetOutput sets the output destination for the logger
func (l *Logger) SetOutput(out io.Writer) {
	l.Logger.SetOutput(out)
}

// AddHook adds a hook to the logger
func (l *Logger) AddHook(hook logrus.Hook) {
	if !l.hookExists(hook) {
		l.Logger.AddHook(hook)
	}
}

// hookExists checks if hook already exists
func (l *Logger) hookExists(hook logrus.Hook) bool {
	for _, h := range l.Hooks {
		for _, existingHook := range h {
			if existingHook == hook {
				return true
			}
		}
	}
	return false
}

// New initializes the standard logger
func New(c *config.Logger) (func(), error) { return StdLogger().Init(c) }

// WithFields returns an entry of the standard logger with the given fields
func WithFields(ctx context.Context, fields logrus.Fields) *logrus.Entry {
	return StdLogger().WithContextFields(ctx, fields)
}

// Info logs info message
func Info(ctx context.Context, args ...any) { StdLogger().Info(ctx, args...) }

// Warn logs warn message
func Warn(ctx context.Context, args ...any) { StdLogger().Warn(ctx, args...) }

// Error logs error message
func Error(ctx context.Context, args ...any) { StdLogger().Error(ctx, args...) }

// Infof logs info message with format
func Infof(ctx context.Context, format string, args ...any) {
	StdLogger().Infof(ctx, format, args...)
}

// Errorf logs error message with format
func Errorf(ctx context.Context, format string, args ...any) {
	StdLogger().Errorf(ctx, format, args...)
}
