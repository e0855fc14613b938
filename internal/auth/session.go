package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore tracks issued tokens per user and device so they can be
// revoked before their expiry.
type SessionStore interface {
	Record(ctx context.Context, userID, tokenID, deviceName string, ttl time.Duration) error
	Revoke(ctx context.Context, userID, tokenID string) error
}

type RedisSessionStore struct {
	rdb *redis.Client
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(userID, tokenID string) string {
	return fmt.Sprintf("session:%s:%s", userID, tokenID)
}

func (s *RedisSessionStore) Record(ctx context.Context, userID, tokenID, deviceName string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKey(userID, tokenID), deviceName, ttl).Err()
}

func (s *RedisSessionStore) Revoke(ctx context.Context, userID, tokenID string) error {
	return s.rdb.Del(ctx, sessionKey(userID, tokenID)).Err()
}
