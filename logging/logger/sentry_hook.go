package logger

import (
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// SentryHook forwards error level entries to Sentry
type SentryHook struct {
	hub *sentry.Hub
}

// NewSentryHook creates a Sentry hook with its own client
func NewSentryHook(dsn, environment, release string) (*SentryHook, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
		Release:     release,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sentry client: %w", err)
	}
	return &SentryHook{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

// Levels returns the levels reported to Sentry
func (h *SentryHook) Levels() []logrus.Level {
	return []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
}

// Fire sends the entry to Sentry
func (h *SentryHook) Fire(entry *logrus.Entry) error {
	hub := h.hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range entry.Data {
			if k == logrus.ErrorKey {
				continue
			}
			scope.SetExtra(k, v)
		}
		if traceID, ok := entry.Data[traceKey].(string); ok {
			scope.SetTag(traceKey, traceID)
		}
		scope.SetLevel(sentryLevel(entry.Level))

		if err, ok := entry.Data[logrus.ErrorKey].(error); ok {
			hub.CaptureException(err)
			return
		}
		hub.CaptureException(errors.New(entry.Message))
	})
	return nil
}

// Flush waits for buffered events to be sent
func (h *SentryHook) Flush() {
	h.hub.Flush(2 * time.Second)
}

func sentryLevel(level logrus.Level) sentry.Level {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return sentry.LevelFatal
	case logrus.ErrorLevel:
		return sentry.LevelError
	case logrus.WarnLevel:
		return sentry.LevelWarning
	case logrus.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
