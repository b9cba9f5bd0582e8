package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shopstack-asia/spi-sdb-app/internal/models"
)

const redisSessionPrefix = "portal:session:"

// RedisSessionStore relies on key TTLs for expiry.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

func (s *RedisSessionStore) Create(ctx context.Context, session models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	return s.client.Set(ctx, redisSessionPrefix+session.ID, payload, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (models.Session, error) {
	raw, err := s.client.Get(ctx, redisSessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, redisSessionPrefix+id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpired is a no-op; redis evicts expired keys itself.
func (s *RedisSessionStore) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
