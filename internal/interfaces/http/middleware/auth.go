// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tulqinjon2001/zakaz-web-app/internal/config"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/auth"
	"github.com/tulqinjon2001/zakaz-web-app/internal/pkg/telegram"
)

// SessionMiddleware validates the session token and stores the session id
// and optional Telegram user in the request context
func SessionMiddleware(cfg *config.Config) gin.HandlerFunc {
	jwtManager := auth.NewJWTManager(cfg)

	return func(c *gin.Context) {
		// Get Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		// Extract token from header
		tokenString := auth.ExtractTokenFromHeader(authHeader)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		// Validate session token
		claims, err := jwtManager.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired session token",
			})
			c.Abort()
			return
		}

		// Store session information in context
		c.Set("session_id", claims.SessionID)
		if claims.TelegramUser != nil {
			c.Set("telegram_user", claims.TelegramUser)
		}

		c.Next()
	}
}

// GetSessionIDFromContext extracts the session id set by SessionMiddleware
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get("session_id")
	if !exists {
		return "", false
	}

	sessionID, ok := value.(string)
	if !ok || sessionID == "" {
		return "", false
	}
	return sessionID, true
}

// GetTelegramUserFromContext extracts the authenticated Telegram user, nil
// in browser-only mode
func GetTelegramUserFromContext(c *gin.Context) *telegram.User {
	value, exists := c.Get("telegram_user")
	if !exists {
		return nil
	}

	user, ok := value.(*telegram.User)
	if !ok {
		return nil
	}
	return user
}
