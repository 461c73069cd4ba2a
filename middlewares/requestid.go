package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/plinth/internal"
	"github.com/dmitrymomot/plinth/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are checked in order for an ID assigned by an
// upstream proxy or gateway.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"}

type requestIDConfig struct {
	headers        []string
	responseHeader string
	generate       func() string
}

// RequestIDOption configures the RequestID middleware.
type RequestIDOption func(*requestIDConfig)

// WithRequestIDHeaders replaces the inbound headers consulted for an
// existing ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.headers = headers
	}
}

// WithRequestIDGenerator replaces the ID generator (default uuid.NewString).
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.generate = gen
	}
}

// WithRequestIDResponseHeader sets the header the ID is echoed on.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *requestIDConfig) {
		cfg.responseHeader = header
	}
}

// RequestID tags every exchange with an ID: the first populated inbound
// header wins so IDs minted upstream survive, otherwise a fresh UUID is
// generated. The ID lands in the request context (see GetRequestID) and
// on the response as X-Request-ID.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := &requestIDConfig{
		headers:        DefaultRequestIDHeaders,
		responseHeader: "X-Request-ID",
		generate:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id := ""
			for _, header := range cfg.headers {
				if id = c.Header(header); id != "" {
					break
				}
			}
			if id == "" {
				id = cfg.generate()
			}

			c.Set(requestIDKey{}, id)
			c.Response().Header().Set(cfg.responseHeader, id)
			return next(c)
		}
	}
}

// GetRequestID returns the exchange's request ID, or "" when the
// RequestID middleware never ran.
func GetRequestID(c internal.Context) string {
	id, _ := c.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adapts the request ID for logger.WithExtractors,
// attaching it as "request_id" on every record logged with the request
// context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
