package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trackr-io/trackr/internal/shared/constants"
	"github.com/trackr-io/trackr/internal/shared/logger"
)

// Logger writes one line per request. 5xx log at error, 4xx at warn and the
// rest at debug.
func Logger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
			"body_size", c.Writer.Size(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			args = append(args, "query", q)
		}
		if id := c.GetString(constants.ContextKeyRequestID); id != "" {
			args = append(args, "request_id", id)
		}
		if userID, ok := c.Get(constants.ContextKeyUserID); ok {
			args = append(args, "user_id", userID)
		}
		if len(c.Errors) > 0 {
			args = append(args, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			log.Errorw("HTTP request completed with server error", args...)
		case status >= 400:
			log.Warnw("HTTP request completed with client error", args...)
		default:
			log.Debugw("HTTP request completed", args...)
		}
	}
}
