package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "session:"

// RedisSessionCache is a read-through cache in front of the sessions
// table. Entries carry a short TTL so a deleted session never outlives
// the cache by long; logout removes the entry immediately.
type RedisSessionCache struct {
	Client *redis.Client
}

func NewRedisSessionCache(client *redis.Client) *RedisSessionCache {
	return &RedisSessionCache{Client: client}
}

func (c *RedisSessionCache) GetUserID(ctx context.Context, token string) (string, error) {
	userID, err := c.Client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

func (c *RedisSessionCache) SetUserID(ctx context.Context, token, userID string, ttl time.Duration) error {
	return c.Client.Set(ctx, sessionKeyPrefix+token, userID, ttl).Err()
}

func (c *RedisSessionCache) Delete(ctx context.Context, token string) error {
	return c.Client.Del(ctx, sessionKeyPrefix+token).Err()
}
