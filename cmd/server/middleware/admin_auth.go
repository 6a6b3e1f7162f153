package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bank-site/internal/logger"
	"bank-site/cmd/server/auth"
)

// AdminAuth verifies the request's JWT and requires the admin role. Every
// dashboard route sits behind it; the article mutation surface is never
// reachable without a token.
func AdminAuth(jwtm *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		subject, role, err := jwtm.Parse(token)
		if err != nil {
			logger.Log.Infof("token parse error: %v", err)
			auth.AbortWithUnauthorized(c, err)
			return
		}

		if role != auth.RoleAdmin {
			logger.Log.Infof("access denied: subject %s has role %s, want admin", subject, role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden_insufficient_permissions"})
			return
		}

		c.Set("subject", subject)
		c.Set("role", role)

		c.Next()
	}
}
