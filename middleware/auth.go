package middleware

import (
	"net/http"
	"strings"

	"github.com/WilkerGw/LP-OTICA/services"

	"github.com/gin-gonic/gin"
)

type TokenValidator interface {
	ValidateToken(token string) (subject string, role string, err error)
}

// AdminAuth only lets requests through with a valid admin Bearer token.
func AdminAuth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format, use 'Bearer <token>'"})
			return
		}

		subject, role, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if role != services.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Set("adminEmail", subject)
		c.Next()
	}
}

func GetAdminEmail(c *gin.Context) string {
	return c.GetString("adminEmail")
}
