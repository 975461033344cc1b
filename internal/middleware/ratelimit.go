package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/andessoft/registro-api/internal/config"
	"github.com/andessoft/registro-api/internal/serviceerror"
)

// RateLimit throttles the public intake endpoints with a fixed window counter
// per client IP kept in Redis. Redis outages fail open so the public forms
// stay reachable.
func RateLimit(client *redis.Client, cfg *config.RateLimitConfig, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !cfg.Enabled {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s", c.ClientIP())
		ctx := c.Request.Context()

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			logger.WithError(err).Warn("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if count == 1 {
			if err := client.Expire(ctx, key, cfg.Window).Err(); err != nil {
				logger.WithError(err).Warn("Failed to set rate limit window expiry")
			}
		}

		if count > int64(cfg.Requests) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				serviceerror.CustomServiceError(serviceerror.InvalidRequestError,
					"demasiadas solicitudes, intente de nuevo más tarde"))
			return
		}

		c.Next()
	}
}
