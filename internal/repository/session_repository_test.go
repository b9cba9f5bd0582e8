package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack-asia/spi-sdb-app/internal/ids"
	"github.com/shopstack-asia/spi-sdb-app/internal/models"
)

// newTestSessionRepository connects to the database named by
// PORTAL_POSTGRES_DSN and skips when none is configured.
func newTestSessionRepository(t *testing.T) *SessionRepository {
	t.Helper()
	dsn := os.Getenv("PORTAL_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("PORTAL_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	repo := NewSessionRepository(pool)
	require.NoError(t, repo.EnsureSchema(ctx))
	// A second run must be harmless.
	require.NoError(t, repo.EnsureSchema(ctx))
	return repo
}

func TestSessionRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestSessionRepository(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	session := models.Session{
		ID:          ids.New(),
		MemberID:    "m-1",
		SealedToken: "sealed",
		Profile:     models.Profile{ID: "m-1", Email: "john.doe@example.com", FirstName: "John"},
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, session))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), session.ID) })

	got, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.MemberID, got.MemberID)
	assert.Equal(t, session.SealedToken, got.SealedToken)
	assert.Equal(t, session.Profile, got.Profile)
	assert.True(t, got.CreatedAt.Equal(session.CreatedAt))
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))

	require.NoError(t, repo.Delete(ctx, session.ID))
	_, err = repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, session.ID), ErrSessionNotFound)
}

func TestSessionRepositoryDeleteExpired(t *testing.T) {
	ctx := context.Background()
	repo := newTestSessionRepository(t)

	// Sessions dated in 1971 keep the sweep clear of any live rows.
	base := time.Date(1971, 1, 1, 0, 0, 0, 0, time.UTC)
	cutoff := base.Add(24 * time.Hour)
	_, err := repo.DeleteExpired(ctx, cutoff)
	require.NoError(t, err)

	expired := []models.Session{
		{ID: ids.New(), MemberID: "m-1", SealedToken: "a", CreatedAt: base, ExpiresAt: base.Add(time.Hour)},
		{ID: ids.New(), MemberID: "m-2", SealedToken: "b", CreatedAt: base, ExpiresAt: cutoff},
	}
	live := models.Session{ID: ids.New(), MemberID: "m-3", SealedToken: "c", CreatedAt: base, ExpiresAt: cutoff.Add(time.Second)}
	for _, s := range append(expired, live) {
		require.NoError(t, repo.Create(ctx, s))
	}
	t.Cleanup(func() { _ = repo.Delete(context.Background(), live.ID) })

	removed, err := repo.DeleteExpired(ctx, cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, len(expired), removed)

	for _, s := range expired {
		_, err := repo.Get(ctx, s.ID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	}
	_, err = repo.Get(ctx, live.ID)
	assert.NoError(t, err)
}
