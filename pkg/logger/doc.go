// Package logger builds structured slog loggers with context-based
// attribute injection and optional Sentry forwarding.
//
// Request-scoped values such as request IDs live in the context, not in
// the logger. A [ContextExtractor] pulls them out on every log call:
//
//	requestID := func(ctx context.Context) (slog.Attr, bool) {
//		if id, ok := ctx.Value(ctxKeyRequestID).(string); ok && id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
//	log := logger.New(logger.WithExtractors(requestID))
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//
// # Sentry
//
// NewWithSentry fans records out to stdout and Sentry. With an empty
// DSN it silently degrades to stdout-only, so the same construction
// works in development and production:
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//		DSN:         os.Getenv("SENTRY_DSN"),
//		Environment: "production",
//		MinLevel:    slog.LevelWarn,
//	})
//
// NewNope returns a discard-everything logger for use as a default.
package logger
