package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route group to the listed roles. Authorization lives
// here, at registration time; use cases never inspect role strings.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient_permissions"})
			return
		}
		c.Next()
	}
}
