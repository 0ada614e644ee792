package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"workspace/internal/domain"
	"workspace/internal/pkg/response"
)

// RequireRoles gates a route group to the given roles.
func RequireRoles(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		sub, ok := Subject(c)
		if !ok {
			c.Abort()
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			return
		}
		if !allowed[sub.Role] {
			c.Abort()
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Insufficient role")
			return
		}
		c.Next()
	}
}
