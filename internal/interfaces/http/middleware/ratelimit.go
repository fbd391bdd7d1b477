package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/infrastructure/ratelimit"
	"github.com/trackr-io/trackr/internal/shared/errors"
	"github.com/trackr-io/trackr/internal/shared/logger"
	"github.com/trackr-io/trackr/internal/shared/utils"
)

// RateLimit throttles a route group per client IP. scope separates the
// counters of different groups. Limiter failures let the request through.
func RateLimit(limiter ratelimit.RateLimiter, scope string, limits ratelimit.Limits, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := scope + ":" + c.ClientIP()
		allowed, err := limiter.Allow(c.Request.Context(), key, limits)
		if err != nil {
			log.Warnw("rate limiter unavailable", "scope", scope, "error", err)
			c.Next()
			return
		}
		if !allowed {
			utils.ErrorResponseWithError(c, errors.NewRateLimitedError("too many requests, please try again later"))
			c.Abort()
			return
		}
		c.Next()
	}
}
