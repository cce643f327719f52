package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/openmind-services/helpdesk-dashboard/internal/config"
)

const (
	redisKeyPrefix = "helpdesk:names:"
	redisNameTTL   = 12 * time.Hour
)

// redisCache shares resolved names across dashboard sessions. Entries carry a
// TTL so display-name changes eventually propagate.
type redisCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisCache connects to Redis using the provided configuration. Lookup
// failures degrade to cache misses, never errors.
func NewRedisCache(cfg config.RedisConfig, logger *zap.Logger) NameCache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis, name cache will miss", zap.Error(err))
	} else {
		logger.Info("connected to redis name cache")
	}

	return &redisCache{client: client, logger: logger}
}

func (c *redisCache) Get(ctx context.Context, ref string) (string, bool) {
	name, err := c.client.Get(ctx, redisKeyPrefix+ref).Result()
	if err != nil {
		return "", false
	}
	return name, name != ""
}

func (c *redisCache) Set(ctx context.Context, ref, name string) {
	if name == "" {
		return
	}
	if err := c.client.Set(ctx, redisKeyPrefix+ref, name, redisNameTTL).Err(); err != nil {
		c.logger.Debug("redis name cache write failed", zap.String("ref", ref), zap.Error(err))
	}
}

func (c *redisCache) Reset(ctx context.Context) {
	iter := c.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Debug("redis name cache delete failed", zap.Error(err))
		}
	}
}
