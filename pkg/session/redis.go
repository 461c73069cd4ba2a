package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key layout: "<prefix>:t:<token>" holds the serialized session,
// "<prefix>:i:<id>" maps the stable session ID to its current token so
// token rotation can drop the stale entry.
const defaultRedisPrefix = "session"

// RedisStore is a Redis-backed session store. Sessions are serialized
// as JSON and expire automatically via key TTLs, so DeleteExpired is a
// cheap no-op kept only for interface completeness.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisOption configures the RedisStore.
type RedisOption func(*RedisStore)

// WithRedisPrefix overrides the key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
// The client should be obtained from pkg/redis.Open.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: defaultRedisPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// record is the serialized form of a Session. Unexported dirty/new
// flags are intentionally not persisted.
type record struct {
	CreatedAt    time.Time      `json:"created_at"`
	LastActiveAt time.Time      `json:"last_active_at"`
	ExpiresAt    time.Time      `json:"expires_at"`
	UserID       *string        `json:"user_id,omitempty"`
	Values       map[string]any `json:"values"`
	ID           string         `json:"id"`
	Token        string         `json:"token"`
	IP           string         `json:"ip,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
}

func toRecord(s *Session) record {
	return record{
		CreatedAt:    s.CreatedAt,
		LastActiveAt: s.LastActiveAt,
		ExpiresAt:    s.ExpiresAt,
		UserID:       s.UserID,
		Values:       s.Values,
		ID:           s.ID,
		Token:        s.Token,
		IP:           s.IP,
		UserAgent:    s.UserAgent,
	}
}

func (rec record) toSession() *Session {
	values := rec.Values
	if values == nil {
		values = make(map[string]any)
	}
	return &Session{
		CreatedAt:    rec.CreatedAt,
		LastActiveAt: rec.LastActiveAt,
		ExpiresAt:    rec.ExpiresAt,
		UserID:       rec.UserID,
		Values:       values,
		ID:           rec.ID,
		Token:        rec.Token,
		IP:           rec.IP,
		UserAgent:    rec.UserAgent,
	}
}

func (s *RedisStore) tokenKey(token string) string { return s.prefix + ":t:" + token }
func (s *RedisStore) idKey(id string) string       { return s.prefix + ":i:" + id }

// Create persists a new session.
func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	return s.write(ctx, sess)
}

// Get retrieves a session by its token.
func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.tokenKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, err
	}

	sess := rec.toSession()
	if sess.IsExpired() {
		return nil, ErrExpired
	}
	return sess, nil
}

// Update saves changes to an existing session, dropping the entry under
// the previous token if the token was rotated.
func (s *RedisStore) Update(ctx context.Context, sess *Session) error {
	oldToken, err := s.client.Get(ctx, s.idKey(sess.ID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	if oldToken != "" && oldToken != sess.Token {
		if err := s.client.Del(ctx, s.tokenKey(oldToken)).Err(); err != nil {
			return err
		}
	}
	return s.write(ctx, sess)
}

// Delete removes a session by its ID.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	token, err := s.client.Get(ctx, s.idKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}
	return s.client.Del(ctx, s.tokenKey(token), s.idKey(id)).Err()
}

// DeleteExpired is a no-op: Redis evicts expired sessions via key TTL.
func (s *RedisStore) DeleteExpired(_ context.Context) (int64, error) {
	return 0, nil
}

func (s *RedisStore) write(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(toRecord(sess))
	if err != nil {
		return err
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrExpired
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.tokenKey(sess.Token), data, ttl)
	pipe.Set(ctx, s.idKey(sess.ID), sess.Token, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

var _ Store = (*RedisStore)(nil)
