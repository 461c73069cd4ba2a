package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/plinth/pkg/logger"
)

type ctxKey struct{}

func TestNew_ExtractorInjectsAttr(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithExtractors(func(ctx context.Context) (slog.Attr, bool) {
			if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
				return slog.String("request_id", id), true
			}
			return slog.Attr{}, false
		}),
	)

	ctx := context.WithValue(context.Background(), ctxKey{}, "abc-123")
	log.InfoContext(ctx, "request processed", slog.Int("status", 200))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc-123", entry["request_id"])
	assert.Equal(t, "request processed", entry["msg"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestNew_ExtractorSkipsWhenAbsent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(
		logger.WithOutput(&buf),
		logger.WithExtractors(func(ctx context.Context) (slog.Attr, bool) {
			return slog.Attr{}, false
		}),
	)

	log.InfoContext(context.Background(), "no extras")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.NotContains(t, entry, "request_id")
}

func TestNew_LevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))

	log.Info("ignored")
	assert.Zero(t, buf.Len())

	log.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestNewNope_Silent(t *testing.T) {
	t.Parallel()

	log := logger.NewNope()
	require.NotNil(t, log)
	log.Error("nobody hears this")
}

func TestNewWithSentry_EmptyDSNFallsBack(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logger.NewWithSentry(logger.SentryConfig{}, logger.WithOutput(&buf))

	log.Info("stdout only")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stdout only", entry["msg"])
}
