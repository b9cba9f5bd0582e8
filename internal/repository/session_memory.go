package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
)

type MemorySessionStore struct {
	items *cache.Cache
}

func NewMemorySessionStore(cleanupInterval time.Duration) *MemorySessionStore {
	return &MemorySessionStore{items: cache.New(cache.NoExpiration, cleanupInterval)}
}

func (s *MemorySessionStore) Create(_ context.Context, session models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	s.items.Set(session.ID, session, ttl)
	return nil
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (models.Session, error) {
	v, ok := s.items.Get(id)
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	return v.(models.Session), nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	if _, ok := s.items.Get(id); !ok {
		return ErrSessionNotFound
	}
	s.items.Delete(id)
	return nil
}

func (s *MemorySessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.items.DeleteExpired()
	var n int64
	for id, item := range s.items.Items() {
		if session, ok := item.Object.(models.Session); ok && session.Expired(now) {
			s.items.Delete(id)
			n++
		}
	}
	return n, nil
}
