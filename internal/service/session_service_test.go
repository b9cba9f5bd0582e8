package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
	"github.com/shopstack-asia/spi-sdb-app/internal/repository"
)

func TestSessionResolveRejectsForeignToken(t *testing.T) {
	sessions := newTestSessions()
	other := NewSessionService(repository.NewMemorySessionStore(time.Minute), "other-secret", time.Hour, zerolog.Nop())

	token, _, err := other.Start(context.Background(), "tok", models.Profile{ID: "m-1"})
	require.NoError(t, err)

	_, err = sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = sessions.Resolve(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSessionExpiresWithClock(t *testing.T) {
	start := time.Now()
	store := repository.NewMemorySessionStore(time.Minute)
	sessions := NewSessionService(store, "secret", time.Hour, zerolog.Nop()).WithClock(fixedClock(start))

	token, active, err := sessions.Start(context.Background(), "tok", models.Profile{ID: "m-1"})
	require.NoError(t, err)
	assert.Equal(t, "m-1", active.MemberID)

	_, err = sessions.Resolve(context.Background(), token)
	require.NoError(t, err)

	sessions.WithClock(fixedClock(start.Add(2 * time.Hour)))
	_, err = sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, ErrNoSession)

	removed, err := sessions.Sweep(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}

func TestSessionStoreHoldsSealedToken(t *testing.T) {
	store := repository.NewMemorySessionStore(time.Minute)
	sessions := NewSessionService(store, "secret", time.Hour, zerolog.Nop())

	_, active, err := sessions.Start(context.Background(), "plain-upstream-token", models.Profile{ID: "m-1"})
	require.NoError(t, err)

	stored, err := store.Get(context.Background(), active.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.SealedToken)
	assert.NotContains(t, stored.SealedToken, "plain-upstream-token")
}
