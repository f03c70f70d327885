package middleware

import (
	"net/http"

	"giftcommerce-admin/internal/auth"

	"github.com/gin-gonic/gin"
)

const AdminEmailKey = "adminEmail"

// AdminAuth rejects requests without a valid admin token.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := auth.ExtractAccessToken(c.Request)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing access token"})
			return
		}

		claims, err := auth.ParseJWT(tokenStr)
		if err != nil || claims.Role != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid access token"})
			return
		}

		c.Set(AdminEmailKey, claims.Email)
		c.Next()
	}
}
