package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"jokehub/src/app/http/response"
	"jokehub/src/core/domain"
	"jokehub/src/core/ports"
)

// userIDKey is the gin context key holding the authenticated user ID.
const userIDKey = "user_id"

const bearerPrefix = "Bearer "

// Auth enforces a valid bearer token on the route. It reads the
// Authorization header, verifies the token, and stores the authenticated
// user ID in the context. A missing credential and an invalid one are
// reported with distinct codes; neither reaches a downstream handler.
func Auth(tokens ports.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := GetRequestID(c)

		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, domain.CodeUnauthorized, "missing bearer token", requestID)
			c.Abort()
			return
		}
		if !strings.HasPrefix(header, bearerPrefix) {
			response.Unauthorized(c, domain.CodeUnauthorized, "authorization header must use the Bearer scheme", requestID)
			c.Abort()
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			response.FromDomainError(c, err, requestID)
			c.Abort()
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the authenticated user ID attached by Auth.
// The second return is false on routes that did not pass through Auth.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
