package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option configures the logger factory.
type Option func(*settings)

type settings struct {
	output     io.Writer
	level      slog.Level
	extractors []ContextExtractor
}

// WithLevel sets the minimum level for emitted records. Defaults to Info.
func WithLevel(level slog.Level) Option {
	return func(s *settings) { s.level = level }
}

// WithOutput redirects log output. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(s *settings) {
		if w != nil {
			s.output = w
		}
	}
}

// WithExtractors registers context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(s *settings) { s.extractors = append(s.extractors, extractors...) }
}

// New creates a JSON-formatted structured logger.
func New(opts ...Option) *slog.Logger {
	s := apply(opts)
	handler := slog.NewJSONHandler(s.output, &slog.HandlerOptions{Level: s.level})
	return slog.New(newContextHandler(handler, s.extractors...))
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func apply(opts []Option) *settings {
	s := &settings{
		output: os.Stdout,
		level:  slog.LevelInfo,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
