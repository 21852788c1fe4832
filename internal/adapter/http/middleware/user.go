package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	UserHeader = "X-User-ID"
	userKey    = "user_id"
)

// UserMiddleware stores the caller identity sent by the trusted front proxy.
func UserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := strings.TrimSpace(c.GetHeader(UserHeader)); user != "" {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// GetUser returns the caller identity, or "" when the request is anonymous.
func GetUser(c *gin.Context) string {
	if user, exists := c.Get(userKey); exists {
		if s, ok := user.(string); ok {
			return s
		}
	}
	return ""
}
