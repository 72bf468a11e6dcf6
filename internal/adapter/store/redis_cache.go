package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"safeplate/internal/domain/entity"
)

const redisKeyPrefix = "safecheck:"

// RedisCache backs the result cache with redis so multiple gateway
// instances share entries. Expiry is delegated to redis's native TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Lookup(ctx context.Context, fingerprint string) (*entity.Result, bool, error) {
	val, err := c.client.Get(ctx, redisKeyPrefix+fingerprint).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis lookup failed: %w", err)
	}

	var res entity.Result
	if err := json.Unmarshal([]byte(val), &res); err != nil {
		// A corrupt entry is unusable; drop it so the next store replaces it.
		_ = c.client.Del(ctx, redisKeyPrefix+fingerprint).Err()
		return nil, false, fmt.Errorf("corrupt cache entry for %s: %w", fingerprint, err)
	}
	return &res, true, nil
}

func (c *RedisCache) Store(ctx context.Context, fingerprint string, res *entity.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+fingerprint, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis store failed: %w", err)
	}
	return nil
}
