package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	mem "menteviva/pkg/memcache"
	"menteviva/pkg/utils"
)

// counterCmds is the part of the redis client RedisCounter uses.
type counterCmds interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// RedisCounter is a CounterStore shared by every instance of the service.
type RedisCounter struct {
	client counterCmds
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (r *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		return count, window, r.client.Expire(ctx, key, window).Err()
	}

	ttl, err := r.client.TTL(ctx, key).Result()
	if err != nil {
		return count, window, nil
	}
	if ttl < 0 {
		// the expiry set with the first hit was lost; without one the key never resets
		return count, window, r.client.Expire(ctx, key, window).Err()
	}
	return count, ttl, nil
}

type RateLimiter struct {
	store  mem.CounterStore
	logger *log.Logger
}

func NewRateLimiter(store mem.CounterStore, logger *log.Logger) *RateLimiter {
	return &RateLimiter{store: store, logger: logger}
}

// Limit allows limit requests per window for each authenticated user, or per
// client IP when the route is public. Store errors let the request through.
func (rl *RateLimiter) Limit(keySuffix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := c.GetString(ContextUserID)
		if subject == "" {
			subject = c.ClientIP()
		}
		key := fmt.Sprintf("rate_limit:%s:%s", keySuffix, subject)

		count, ttl, err := rl.store.Incr(c.Request.Context(), key, window)
		if err != nil {
			rl.logger.Warn("rate limiter unavailable", "key", key, "err", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(ttl.Seconds()))))
			utils.RespondError(c, http.StatusTooManyRequests, "Too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
