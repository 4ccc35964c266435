package ledger

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyUsageRecord = "ledger:usage:%s"

// RedisStore implements Store using a Redis hash per identifier, so the
// premium counter can be incremented atomically with HINCRBY
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// creates a Redis-backed store from a URL and verifies connectivity
func NewRedisStoreFromURL(redisURL string) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get(ctx context.Context, identifier string) (*UsageRecord, error) {
	fields, err := s.client.HGetAll(ctx, fmt.Sprintf(keyUsageRecord, identifier)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, nil
	}

	record := &UsageRecord{Identifier: identifier}

	if v, ok := fields["premium_count"]; ok {
		count, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("corrupt premium_count for %s: %w", identifier, err)
		}
		record.PremiumCount = count
	}

	if v, ok := fields["window_started_at"]; ok {
		record.WindowStartedAt = parseUnix(v)
	}

	if v, ok := fields["updated_at"]; ok {
		record.UpdatedAt = parseUnix(v)
	}

	return record, nil
}

func (s *RedisStore) Put(ctx context.Context, record *UsageRecord) error {
	return s.client.HSet(ctx, fmt.Sprintf(keyUsageRecord, record.Identifier),
		"premium_count", record.PremiumCount,
		"window_started_at", record.WindowStartedAt.Unix(),
		"updated_at", record.UpdatedAt.Unix(),
	).Err()
}

func (s *RedisStore) IncrementPremium(ctx context.Context, identifier string, now time.Time) error {
	key := fmt.Sprintf(keyUsageRecord, identifier)

	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, key, "premium_count", 1)
	pipe.HSet(ctx, key, "updated_at", now.Unix())

	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func parseUnix(v string) time.Time {
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(sec, 0)
}
