package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Behnamfe76/officedesk/internal/config"
)

const unreadKeyPrefix = "notif:unread:"

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// UnreadCache stores unread notification counts under notif:unread:<user>.
// Every Redis error is treated as a miss.
type UnreadCache struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewUnreadCache builds the cache. A nil client disables caching.
func NewUnreadCache(client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *UnreadCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UnreadCache{client: client, ttl: ttl, logger: logger}
}

func unreadKey(username string) string {
	return unreadKeyPrefix + username
}

// Get returns the cached count.
func (c *UnreadCache) Get(ctx context.Context, username string) (int64, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	count, err := c.client.Get(ctx, unreadKey(username)).Int64()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("unread cache get failed", zap.Error(err))
		}
		return 0, false
	}
	return count, true
}

// Set stores count with the configured TTL.
func (c *UnreadCache) Set(ctx context.Context, username string, count int64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, unreadKey(username), count, c.ttl).Err(); err != nil {
		c.logger.Debug("unread cache set failed", zap.Error(err))
	}
}

// Invalidate drops cached counts.
func (c *UnreadCache) Invalidate(ctx context.Context, usernames ...string) {
	if c == nil || c.client == nil || len(usernames) == 0 {
		return
	}
	keys := make([]string, 0, len(usernames))
	for _, u := range usernames {
		keys = append(keys, unreadKey(u))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Debug("unread cache invalidate failed", zap.Error(err))
	}
}
