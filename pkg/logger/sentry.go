package logger

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel determines which log levels are forwarded to Sentry.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes to both stdout and Sentry.
// With an empty DSN it degrades to stdout-only logging, so the same
// code path works in local development. Context extractors apply to
// both destinations.
func NewWithSentry(cfg SentryConfig, opts ...Option) *slog.Logger {
	s := apply(opts)
	stdoutHandler := slog.NewJSONHandler(s.output, &slog.HandlerOptions{Level: s.level})

	if cfg.DSN == "" {
		return slog.New(newContextHandler(stdoutHandler, s.extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("sentry init failed, falling back to stdout",
			slog.String("error", err.Error()))
		return slog.New(newContextHandler(stdoutHandler, s.extractors...))
	}

	// Errors create Issues; lower levels are stored as logs for context.
	eventLevel := []slog.Level{slog.LevelError}
	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel == slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	sentryHandler := sentryslog.Option{
		EventLevel: eventLevel,
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	combined := newFanoutHandler(stdoutHandler, sentryHandler)
	return slog.New(newContextHandler(combined, s.extractors...))
}
