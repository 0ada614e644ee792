package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"workspace/internal/domain"
	jwtsvc "workspace/internal/pkg/jwt"
	"workspace/internal/pkg/response"
)

// JWTAuth validates the bearer token and attaches the subject identity
// (user_id, role, organization_id) to the request context. Handlers behind
// it read identity from the context only.
func JWTAuth(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			abortUnauthorized(c, "Missing Authorization header")
			return
		}
		if !strings.HasPrefix(h, "Bearer ") {
			abortUnauthorized(c, "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			abortUnauthorized(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		if claims.OrganizationID != nil {
			c.Set("organization_id", *claims.OrganizationID)
		}

		c.Next()
	}
}

// Subject rebuilds the identity attached by JWTAuth.
func Subject(c *gin.Context) (domain.Subject, bool) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		return domain.Subject{}, false
	}

	sub := domain.Subject{
		UserID: userID,
		Role:   domain.Role(c.GetString("role")),
	}
	if v, ok := c.Get("organization_id"); ok {
		if orgID, ok := v.(int64); ok {
			sub.OrganizationID = &orgID
		}
	}
	return sub, true
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.Abort()
	response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", msg)
}
