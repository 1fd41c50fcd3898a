package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores sessions as "session:<id>" keys expiring with the token.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) key(id string) string {
	return "session:" + id
}

func (b *RedisBackend) Save(ctx context.Context, id string, userID uint, ttl time.Duration) error {
	return b.client.Set(ctx, b.key(id), strconv.FormatUint(uint64(userID), 10), ttl).Err()
}

func (b *RedisBackend) Lookup(ctx context.Context, id string) (uint, error) {
	val, err := b.client.Get(ctx, b.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrRevoked
	}
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	return uint(userID), nil
}

func (b *RedisBackend) Delete(ctx context.Context, id string) error {
	return b.client.Del(ctx, b.key(id)).Err()
}
