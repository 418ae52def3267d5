package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopstack/backend/internal/config"
)

const sessionKeyPrefix = "refresh_token:"

// RedisSessionStore keeps the currently valid refresh token per user in
// Redis. The key TTL doubles as the session expiry, so revoked and
// expired sessions look the same to callers.
type RedisSessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionStore(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisSessionStore, error) {
	db, err := strconv.Atoi(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB %q: %w", cfg.DB, err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisSessionStore{rdb: rdb, ttl: ttl}, nil
}

// Get returns the stored refresh token for the user, or "" when no
// session is live.
func (s *RedisSessionStore) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	val, err := s.rdb.Get(ctx, SessionKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SetWithExpiry writes the refresh token with the session TTL in a single
// command, replacing any previous session for the user.
func (s *RedisSessionStore) SetWithExpiry(ctx context.Context, userID uuid.UUID, token string) error {
	return s.rdb.Set(ctx, SessionKey(userID), token, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.rdb.Del(ctx, SessionKey(userID)).Err()
}

func (s *RedisSessionStore) Close() error {
	return s.rdb.Close()
}

// SessionKey is the Redis key holding a user's refresh token.
func SessionKey(userID uuid.UUID) string {
	return sessionKeyPrefix + userID.String()
}
