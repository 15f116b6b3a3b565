package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares code mappings between replicas.  Keys embed the
// window so a new day starts empty; the TTL lets Redis drop yesterday's.
//
//	lumina:code:2025-06-01:DEMO → "67"
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps client.  An empty prefix defaults to "lumina:code".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "lumina:code"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(window, code string) string {
	return s.prefix + ":" + window + ":" + code
}

func (s *RedisStore) Get(ctx context.Context, window, code string) (string, bool, error) {
	id, err := s.client.Get(ctx, s.key(window, code)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", code, err)
	}
	return id, true, nil
}

func (s *RedisStore) Set(ctx context.Context, window, code, id string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if err := s.client.Set(ctx, s.key(window, code), id, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", code, err)
	}
	return nil
}
