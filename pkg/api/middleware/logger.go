package middleware

import (
	"time"

	"agentscrape-go/pkg/cli/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request, carrying the client's request ID.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		if status >= 500 {
			ev = log.Error()
		} else if status >= 400 {
			ev = log.Warn()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetHeader("X-Request-ID")).
			Int("status", status).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
