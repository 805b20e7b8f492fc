package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"jokehub/src/app/http/response"
)

// Recovery turns a handler panic into a generic 500. The panic value and
// stack go to the log; the client sees nothing internal. Must be first in
// the chain.
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestID := GetRequestID(c)
				log.Error("panic recovered",
					"request_id", requestID,
					"error", r,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.InternalError(c, requestID)
				c.Abort()
			}
		}()

		c.Next()
	}
}
