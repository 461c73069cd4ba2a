// Package redis opens go-redis clients with production pool defaults,
// startup retry, and hooks for health checks and graceful shutdown.
package redis

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrEmptyURL         = errors.New("redis: empty connection URL")
	ErrParseURL         = errors.New("redis: failed to parse connection URL")
	ErrConnectionFailed = errors.New("redis: failed to establish connection")
	ErrUnhealthy        = errors.New("redis: healthcheck failed")
)

// Option configures a Redis connection.
type Option func(*options)

type options struct {
	poolSize      int
	minIdleConns  int
	maxIdleTime   time.Duration
	maxLifetime   time.Duration
	retryAttempts int
	retryInterval time.Duration
	opTimeout     time.Duration
	dialTimeout   time.Duration
}

// WithPoolSize sets the maximum number of pooled connections.
// Default: 10.
func WithPoolSize(n int) Option {
	return func(o *options) { o.poolSize = n }
}

// WithMinIdleConns sets the minimum number of idle connections kept open.
// Default: 5.
func WithMinIdleConns(n int) Option {
	return func(o *options) { o.minIdleConns = n }
}

// WithConnLimits sets the maximum idle time and total lifetime of a
// pooled connection. Defaults: 10 minutes idle, 30 minutes lifetime.
func WithConnLimits(maxIdle, maxLifetime time.Duration) Option {
	return func(o *options) {
		o.maxIdleTime = maxIdle
		o.maxLifetime = maxLifetime
	}
}

// WithRetry configures startup retry behavior: number of attempts and
// the base interval, which grows linearly per attempt.
// Default: 3 attempts, 5 second base interval.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithOpTimeout sets the read and write timeout for commands.
// Default: 3 seconds.
func WithOpTimeout(d time.Duration) Option {
	return func(o *options) { o.opTimeout = d }
}

// WithDialTimeout sets the timeout for establishing new connections.
// Default: 5 seconds.
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) { o.dialTimeout = d }
}

// Connect opens a Redis client and verifies connectivity with a ping,
// retrying on failure. Supports redis:// and rediss:// (TLS) schemes.
//
//	client, err := redis.Connect(ctx, "redis://localhost:6379/0",
//	    redis.WithPoolSize(20),
//	)
func Connect(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrParseURL
	}

	o := &options{
		poolSize:      10,
		minIdleConns:  5,
		maxIdleTime:   10 * time.Minute,
		maxLifetime:   30 * time.Minute,
		retryAttempts: 3,
		retryInterval: 5 * time.Second,
		opTimeout:     3 * time.Second,
		dialTimeout:   5 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrParseURL, err)
	}

	redisOpts.PoolSize = o.poolSize
	redisOpts.MinIdleConns = o.minIdleConns
	redisOpts.ConnMaxIdleTime = o.maxIdleTime
	redisOpts.ConnMaxLifetime = o.maxLifetime
	redisOpts.ReadTimeout = o.opTimeout
	redisOpts.WriteTimeout = o.opTimeout
	redisOpts.DialTimeout = o.dialTimeout

	attempts := max(o.retryAttempts, 1)
	for i := 0; i < attempts; i++ {
		client := redis.NewClient(redisOpts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		if waitErr := sleep(ctx, time.Duration(i+1)*o.retryInterval); waitErr != nil {
			return nil, errors.Join(ErrConnectionFailed, waitErr)
		}
	}
	return nil, ErrConnectionFailed
}

// Healthcheck returns a probe compatible with health endpoints that
// expect func(context.Context) error.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrUnhealthy
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrUnhealthy, err)
		}
		return nil
	}
}

// Shutdown returns a hook that closes the client. Use with the app's
// shutdown hook option.
func Shutdown(client io.Closer) func(ctx context.Context) error {
	return func(_ context.Context) error {
		return client.Close()
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
