package services

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const geoCachePrefix = "geo:"

// GeoCache cache danh sách địa lý trên redis. rdb nil thì cache bị tắt.
type GeoCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewGeoCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *GeoCache {
	return &GeoCache{rdb: rdb, ttl: ttl, logger: logger}
}

// GetFromRedis trả về false khi không có key hoặc cache tắt
func (c *GeoCache) GetFromRedis(ctx context.Context, key string, target interface{}) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	cached, err := c.rdb.Get(ctx, geoCachePrefix+key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(cached, target); err != nil {
		c.logger.Warn("redis decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *GeoCache) SetToRedis(ctx context.Context, key string, value interface{}) {
	if c == nil || c.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("redis encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, geoCachePrefix+key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate xoá toàn bộ cache địa lý sau mỗi lần thay đổi
func (c *GeoCache) Invalidate(ctx context.Context) {
	if c == nil || c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, geoCachePrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("redis scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("redis del failed", zap.Error(err))
	}
}
