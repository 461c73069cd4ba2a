package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is a PostgreSQL-backed session store over a pgx pool.
// Session values are stored as JSONB. Run the migrations under
// pkg/session/migrations before first use.
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PostgreSQL-backed session store.
// The pool should be obtained from pkg/db.Connect.
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

const (
	pgInsertSession = `
		INSERT INTO sessions (id, token, user_id, data, ip, user_agent, created_at, last_active_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	pgSelectSession = `
		SELECT id, token, user_id, data, ip, user_agent, created_at, last_active_at, expires_at
		FROM sessions WHERE token = $1`
	pgUpdateSession = `
		UPDATE sessions
		SET token = $2, user_id = $3, data = $4, ip = $5, user_agent = $6,
		    last_active_at = $7, expires_at = $8
		WHERE id = $1`
	pgDeleteSession        = `DELETE FROM sessions WHERE id = $1`
	pgDeleteExpiredSession = `DELETE FROM sessions WHERE expires_at <= $1`
)

// Create persists a new session.
func (s *PgStore) Create(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess.Values)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, pgInsertSession,
		sess.ID, sess.Token, sess.UserID, data, sess.IP, sess.UserAgent,
		sess.CreatedAt, sess.LastActiveAt, sess.ExpiresAt,
	)
	return err
}

// Get retrieves a session by its token.
func (s *PgStore) Get(ctx context.Context, token string) (*Session, error) {
	row := s.pool.QueryRow(ctx, pgSelectSession, token)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if sess.IsExpired() {
		return nil, ErrExpired
	}
	return sess, nil
}

// Update saves changes to an existing session. The row is addressed by
// the stable session ID, so token rotation is a plain column update.
func (s *PgStore) Update(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess.Values)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, pgUpdateSession,
		sess.ID, sess.Token, sess.UserID, data, sess.IP, sess.UserAgent,
		sess.LastActiveAt, sess.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a session by its ID.
func (s *PgStore) Delete(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, pgDeleteSession, id)
	return err
}

// DeleteExpired removes all expired sessions and returns the count.
func (s *PgStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, pgDeleteExpiredSession, time.Now())
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanSession(row pgx.Row) (*Session, error) {
	var (
		sess Session
		data []byte
	)
	if err := row.Scan(
		&sess.ID, &sess.Token, &sess.UserID, &data, &sess.IP, &sess.UserAgent,
		&sess.CreatedAt, &sess.LastActiveAt, &sess.ExpiresAt,
	); err != nil {
		return nil, err
	}

	sess.Values = make(map[string]any)
	if len(data) > 0 {
		if err := json.Unmarshal(data, &sess.Values); err != nil {
			return nil, err
		}
	}
	return &sess, nil
}

var _ Store = (*PgStore)(nil)
