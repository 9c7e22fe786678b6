package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCache stores cached results in Redis, relying on key TTLs for
// expiry.
type RedisCache struct {
	client *redis.Client
	source string
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(addr, source string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisCache{client: client, source: source}, nil
}

func (c *RedisCache) redisKey(key string) string {
	return "analysis:" + c.source + ":" + key
}

// Get returns a cached entry, or nil if missing or expired.
func (c *RedisCache) Get(ctx context.Context, key string) (*CachedResult, error) {
	raw, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result CachedResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Set stores an entry, letting Redis expire it after the TTL.
func (c *RedisCache) Set(ctx context.Context, key string, data map[string]interface{}, ttl time.Duration) error {
	result := CachedResult{
		Key:       key,
		Source:    c.source,
		Data:      data,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}

	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.redisKey(key), raw, ttl).Err()
}

// Delete removes an entry.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, c.redisKey(key)).Err()
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
