package util

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter throttles login attempts per username with a redis counter.
// It fails open: if redis is unavailable the attempt is always allowed.
type Limiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

func NewLimiter(rdb *redis.Client, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	return &Limiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		logger: logger,
	}
}

// Allow reports whether another attempt for key is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if l.rdb == nil {
		return true
	}

	redisKey := fmt.Sprintf("limit:login:%s", key)

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		if l.logger != nil {
			l.logger.Warn("Redis rate limit check failed, allowing attempt",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return true
	}

	if count == 1 {
		l.rdb.Expire(ctx, redisKey, l.window)
	}

	return count <= int64(l.limit)
}
