package analyzer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keySearchPayload = "analyzer:search:%s"

// RedisCache implements CacheStore using Redis with native TTL expiry
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, handle string) ([]byte, error) {
	payload, err := c.client.Get(ctx, fmt.Sprintf(keySearchPayload, handle)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return payload, nil
}

func (c *RedisCache) Set(ctx context.Context, handle string, payload []byte, ttl time.Duration) error {
	return c.client.Set(ctx, fmt.Sprintf(keySearchPayload, handle), payload, ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
