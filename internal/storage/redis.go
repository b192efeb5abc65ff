package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores items as plain redis strings under a key prefix.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend wraps an existing client. Keys are written as prefix+key.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisBackend) redisKey(key string) string {
	return r.prefix + key
}

// GetItem returns the raw value stored under key.
func (r *RedisBackend) GetItem(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, r.redisKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get %s from Redis: %w", key, err)
	}
	return value, nil
}

// SetItem stores value under key without expiry. Daily keys expire logically
// through their envelope, not through a redis TTL.
func (r *RedisBackend) SetItem(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to save %s to Redis: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key.
func (r *RedisBackend) RemoveItem(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from Redis: %w", key, err)
	}
	return nil
}
