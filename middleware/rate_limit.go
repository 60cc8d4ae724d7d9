package middleware

import (
	"fmt"
	"net/http"
	"time"

	"dataroom/logger"
	"dataroom/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit is a fixed-window per-client limiter backed by Redis. When Redis
// is unreachable the request is let through; throttling is a convenience, not
// a correctness guarantee.
func RateLimit(client *redis.Client, times int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.Debugf("rate limiter unavailable: %v", err)
			c.Next()
			return
		}
		if count == 1 {
			client.Expire(ctx, key, window)
		}

		if count > int64(times) {
			utils.Error(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}
