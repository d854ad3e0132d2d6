package fetch

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/support-gateway/internal/config"
)

const cacheKeyPrefix = "fetch:page:"

// PageCache stores simplified page bodies in Redis so repeat fetches of the
// same URL skip the network. All methods are safe on a nil receiver, which
// is how caching is disabled.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPageCache connects to Redis using the provided configuration. Returns
// nil (caching disabled) when no address is configured.
func NewPageCache(cfg config.CacheConfig, logger *zap.Logger) *PageCache {
	if cfg.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis, page cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	logger.Info("page cache connected")

	return &PageCache{client: client, ttl: cfg.TTL(), logger: logger}
}

// Get returns a cached body for url if present.
func (c *PageCache) Get(ctx context.Context, url string) (string, bool) {
	if c == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, cacheKeyPrefix+url).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Put stores a simplified body for url. Cache write failures are logged and
// otherwise ignored.
func (c *PageCache) Put(ctx context.Context, url, body string) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, cacheKeyPrefix+url, body, c.ttl).Err(); err != nil {
		c.logger.Debug("page cache write failed", zap.String("url", url), zap.Error(err))
	}
}

// Close closes the underlying client.
func (c *PageCache) Close() {
	if c != nil && c.client != nil {
		_ = c.client.Close()
	}
}
