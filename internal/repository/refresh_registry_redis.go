package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRefreshRegistry keeps the per-user refresh token in Redis so the
// single-active-token invariant survives process restarts and holds across
// replicas. Single-key SET/GET/DEL keep each user's read-modify-write atomic
// on the Redis side.
type RedisRefreshRegistry struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRefreshRegistry stores entries under prefix with ttl matching the
// refresh token lifetime, so stale entries expire with the tokens they track.
func NewRedisRefreshRegistry(client *redis.Client, prefix string, ttl time.Duration) *RedisRefreshRegistry {
	return &RedisRefreshRegistry{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisRefreshRegistry) key(userID string) string {
	return fmt.Sprintf("%s:refresh:%s", r.prefix, userID)
}

func (r *RedisRefreshRegistry) Store(ctx context.Context, userID string, token string) error {
	if err := r.client.Set(ctx, r.key(userID), token, r.ttl).Err(); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (r *RedisRefreshRegistry) Validate(ctx context.Context, userID string, token string) (bool, error) {
	stored, err := r.client.Get(ctx, r.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("validate refresh token: %w", err)
	}
	return stored == token, nil
}

func (r *RedisRefreshRegistry) Revoke(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
