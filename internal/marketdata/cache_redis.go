package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"market-analytics/internal/model"
)

// RedisCacheConfig configures the shared candle cache.
type RedisCacheConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCache is a Cache shared across analytics nodes. Candle slices are
// stored as JSON values with Redis-native expiry, so every node sees the
// same TTL window.
type RedisCache struct {
	client *goredis.Client
	log    *slog.Logger
}

// NewRedisCache connects to Redis and pings the server.
func NewRedisCache(cfg RedisCacheConfig, log *slog.Logger) (*RedisCache, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.Info("candle cache connected", slog.String("addr", cfg.Addr))
	return &RedisCache{client: client, log: log}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]model.Candle, bool) {
	raw, err := c.client.Get(ctx, "candles:"+key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("cache get failed", slog.String("key", key), slog.Any("err", err))
		}
		return nil, false
	}

	var candles []model.Candle
	if err := json.Unmarshal(raw, &candles); err != nil {
		c.log.Warn("cache entry corrupt, dropping", slog.String("key", key), slog.Any("err", err))
		c.client.Del(ctx, "candles:"+key)
		return nil, false
	}
	return candles, true
}

func (c *RedisCache) Set(ctx context.Context, key string, candles []model.Candle, ttl time.Duration) {
	raw, err := json.Marshal(candles)
	if err != nil {
		c.log.Warn("cache marshal failed", slog.String("key", key), slog.Any("err", err))
		return
	}
	if err := c.client.Set(ctx, "candles:"+key, raw, ttl).Err(); err != nil {
		c.log.Warn("cache set failed", slog.String("key", key), slog.Any("err", err))
	}
}

// Close releases the Redis connection.
func (c *RedisCache) Close() error { return c.client.Close() }
