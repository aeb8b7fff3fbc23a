package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"subleasend/backend/internal/auth"
)

// CallerIDKey is the gin context key holding the authenticated user id.
const CallerIDKey = "user_id"

// RequireAuth resolves the caller from the Authorization header and aborts
// with 401 when the bearer credential is absent or fails verification.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(CallerIDKey, userID)
		c.Next()
	}
}

// CallerID returns the authenticated user id set by RequireAuth.
func CallerID(c *gin.Context) uint {
	v, _ := c.Get(CallerIDKey)
	id, _ := v.(uint)
	return id
}
