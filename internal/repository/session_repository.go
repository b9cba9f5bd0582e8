package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps portal sessions in postgres.
type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) EnsureSchema(ctx context.Context) error {
	const query = `
		CREATE TABLE IF NOT EXISTS portal_sessions (
			id           TEXT PRIMARY KEY,
			member_id    TEXT NOT NULL,
			sealed_token TEXT NOT NULL,
			profile      JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			expires_at   TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS portal_sessions_expires_at_idx ON portal_sessions (expires_at);
	`
	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *SessionRepository) Create(ctx context.Context, session models.Session) error {
	const query = `
		INSERT INTO portal_sessions (id, member_id, sealed_token, profile, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	profile, err := json.Marshal(session.Profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	_, err = r.pool.Exec(ctx, query,
		session.ID,
		session.MemberID,
		session.SealedToken,
		profile,
		session.CreatedAt,
		session.ExpiresAt,
	)
	return err
}

func (r *SessionRepository) Get(ctx context.Context, id string) (models.Session, error) {
	const query = `
		SELECT id, member_id, sealed_token, profile, created_at, expires_at
		FROM portal_sessions
		WHERE id = $1
	`

	row := r.pool.QueryRow(ctx, query, id)
	var (
		session models.Session
		profile []byte
	)
	if err := row.Scan(
		&session.ID,
		&session.MemberID,
		&session.SealedToken,
		&profile,
		&session.CreatedAt,
		&session.ExpiresAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	if err := json.Unmarshal(profile, &session.Profile); err != nil {
		return models.Session{}, fmt.Errorf("decode profile: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM portal_sessions WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM portal_sessions WHERE expires_at <= $1`
	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
