package identifier

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedChecker decorates a LivenessChecker with a Redis cache. The engine
// itself never caches across assessments; this decorator is wiring a caller
// opts into when running many assessments against the same resolvers.
type CachedChecker struct {
	next   LivenessChecker
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedChecker wraps next with a cache of the given TTL. A nil client
// returns next unchanged so wiring stays unconditional.
func NewCachedChecker(next LivenessChecker, client *redis.Client, ttl time.Duration, logger *slog.Logger) LivenessChecker {
	if client == nil {
		return next
	}
	return &CachedChecker{next: next, client: client, ttl: ttl, logger: logger}
}

func (c *CachedChecker) Alive(ctx context.Context, url string) bool {
	key := "fairmeter:liveness:" + url
	if v, err := c.client.Get(ctx, key).Result(); err == nil {
		return v == "1"
	} else if err != redis.Nil && c.logger != nil {
		c.logger.DebugContext(ctx, "liveness cache read failed", "url", url, "error", err)
	}

	alive := c.next.Alive(ctx, url)

	v := "0"
	if alive {
		v = "1"
	}
	if err := c.client.Set(ctx, key, v, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.DebugContext(ctx, "liveness cache write failed", "url", url, "error", err)
	}
	return alive
}
