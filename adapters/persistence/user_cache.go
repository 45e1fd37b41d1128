package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/user-gateway/internal/domain/user"
	"github.com/khoahotran/user-gateway/pkg/logger"
)

const listCachePrefix = "users:list:"

// RedisUserCache is a best-effort read-through cache for projected list
// queries. Every failure degrades to a cache miss; callers always fall
// through to the store.
type RedisUserCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisUserCache(rdb *redis.Client, ttl time.Duration, log logger.Logger) *RedisUserCache {
	return &RedisUserCache{rdb: rdb, ttl: ttl, logger: log}
}

func (c *RedisUserCache) GetList(ctx context.Context, key string) ([]*user.User, bool) {
	raw, err := c.rdb.Get(ctx, listCachePrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read list cache", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var users []*user.User
	if err := json.Unmarshal(raw, &users); err != nil {
		c.logger.Warn("Corrupt list cache entry, ignoring", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return users, true
}

func (c *RedisUserCache) SetList(ctx context.Context, key string, users []*user.User) {
	raw, err := json.Marshal(users)
	if err != nil {
		c.logger.Warn("Failed to marshal users for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, listCachePrefix+key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to write list cache", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops every cached list. Called after each successful mutation.
func (c *RedisUserCache) Invalidate(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, listCachePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("Failed to drop list cache key", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("Failed to scan list cache keys", zap.Error(err))
	}
}
