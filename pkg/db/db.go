// Package db opens pgx connection pools with retry, and applies goose
// schema migrations over them.
package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrParseConfig      = errors.New("db: failed to parse connection URL")
	ErrConnectionFailed = errors.New("db: failed to open connection")
	ErrUnhealthy        = errors.New("db: healthcheck failed")
	ErrSetDialect       = errors.New("db: failed to set migration dialect")
	ErrApplyMigrations  = errors.New("db: failed to apply migrations")
)

// Option configures the connection pool.
type Option func(*options)

type options struct {
	maxConns          int32
	minConns          int32
	healthCheckPeriod time.Duration
	maxConnIdleTime   time.Duration
	maxConnLifetime   time.Duration
	retryAttempts     int
	retryInterval     time.Duration
}

// WithPoolLimits sets the connection pool bounds. Defaults: 10 max, 5 min.
func WithPoolLimits(maxConns, minConns int32) Option {
	return func(o *options) {
		o.maxConns = maxConns
		o.minConns = minConns
	}
}

// WithConnLimits sets how long a pooled connection may sit idle and its
// total lifetime. Short lifetimes play nicer with poolers like
// PgBouncer and with database failovers. Defaults: 10m idle, 30m total.
func WithConnLimits(maxIdle, maxLifetime time.Duration) Option {
	return func(o *options) {
		o.maxConnIdleTime = maxIdle
		o.maxConnLifetime = maxLifetime
	}
}

// WithRetry configures startup retry: attempts and base interval, which
// grows linearly per attempt. Default: 3 attempts, 5s.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// Connect establishes a PostgreSQL connection pool and verifies it with
// a ping, retrying on transient startup failures.
func Connect(ctx context.Context, url string, opts ...Option) (*pgxpool.Pool, error) {
	o := &options{
		maxConns:          10,
		minConns:          5,
		healthCheckPeriod: time.Minute,
		maxConnIdleTime:   10 * time.Minute,
		maxConnLifetime:   30 * time.Minute,
		retryAttempts:     3,
		retryInterval:     5 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}
	poolConfig.MaxConns = o.maxConns
	poolConfig.MinConns = o.minConns
	poolConfig.HealthCheckPeriod = o.healthCheckPeriod
	poolConfig.MaxConnIdleTime = o.maxConnIdleTime
	poolConfig.MaxConnLifetime = o.maxConnLifetime

	attempts := max(o.retryAttempts, 1)
	for i := 0; i < attempts; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			// A ping catches auth and permission issues that pool
			// construction alone does not surface.
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * o.retryInterval):
		}
	}

	return nil, ErrConnectionFailed
}

// Healthcheck returns a probe compatible with health endpoints that
// expect func(context.Context) error.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if pool == nil {
			return ErrUnhealthy
		}
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrUnhealthy, err)
		}
		return nil
	}
}

// Shutdown returns a hook that closes the pool. Use with the app's
// shutdown hook option.
func Shutdown(pool *pgxpool.Pool) func(ctx context.Context) error {
	return func(_ context.Context) error {
		pool.Close()
		return nil
	}
}
