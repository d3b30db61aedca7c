package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"clubpoints/config"
)

const adminPasswordHeader = "X-Admin-Password"

// AdminAuth guards mutating endpoints with a bcrypt-checked password
// header. The gate is disabled when no hash is configured, which is the
// normal mode for a locally run editor.
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		hash := config.AppConfig.AdminPasswordHash
		if hash == "" {
			c.Next()
			return
		}
		password := c.GetHeader(adminPasswordHeader)
		if password == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin password required"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
			zap.L().Warn("Admin auth failed", zap.String("ip", c.ClientIP()))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid admin password"})
			return
		}
		c.Next()
	}
}
