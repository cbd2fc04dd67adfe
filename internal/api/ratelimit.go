package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window, per-client-IP limiter backed by Redis,
// adapted from the teacher's api_gateway/src/ratelimit and trimmed to the
// one rule this service needs: one limit/window pair applied to every route.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

// NewRateLimiter builds a RateLimiter allowing limit requests per window
// per client IP. A nil redis client disables limiting entirely (e.g. in
// tests or a single-node dev deployment without Redis).
func NewRateLimiter(client *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{redis: client, limit: limit, window: window}
}

// Middleware increments a counter keyed by client IP and current window,
// rejecting with 429 once limit is exceeded. Redis errors fail open: a
// degraded rate limiter must never take the pricing/quote APIs down,
// mirroring the provider package's "absorb, never propagate" rule (§5/§7).
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl == nil || rl.redis == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), time.Now().Unix()/int64(rl.window.Seconds()))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 200*time.Millisecond)
		defer cancel()

		count, err := rl.redis.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if count == 1 {
			rl.redis.Expire(ctx, key, rl.window)
		}

		if int(count) > rl.limit {
			c.Header("Retry-After", rl.window.String())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "rate limit exceeded",
				Key:   "rateLimited",
			})
			return
		}

		c.Next()
	}
}
