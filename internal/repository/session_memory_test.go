package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
)

func TestMemorySessionStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySessionStore(time.Minute)
	now := time.Now()

	session := models.Session{
		ID:          "s-1",
		MemberID:    "m-1",
		SealedToken: "sealed",
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
	}
	require.NoError(t, store.Create(ctx, session))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "m-1", got.MemberID)

	removed, err := store.DeleteExpired(ctx, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, removed)

	removed, err = store.DeleteExpired(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, err = store.Get(ctx, "s-1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "s-1"), ErrSessionNotFound)
}

func TestMemorySessionStoreRejectsExpired(t *testing.T) {
	store := NewMemorySessionStore(time.Minute)
	err := store.Create(context.Background(), models.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Second)})
	assert.Error(t, err)
}
