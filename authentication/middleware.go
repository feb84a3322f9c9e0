package authentication

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"care-connect/models"
)

// Context keys set by the auth middleware.
const (
	ContextEmailKey = "email"
	ContextRoleKey  = "role"
)

// AuthMiddleware verifies the bearer token and, when roles are given,
// requires the caller to hold one of them.
func AuthMiddleware(tm *TokenManager, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "missing the authorization header",
			})
			return
		}

		authHeader := strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer"))
		claims, err := tm.VerifyToken(authHeader)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
				"error":   err.Error(),
			})
			return
		}

		if len(roles) > 0 && !roleAllowed(claims.Role, roles) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "you are not permitted to access this resource",
			})
			return
		}

		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

func roleAllowed(role models.UserRole, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
