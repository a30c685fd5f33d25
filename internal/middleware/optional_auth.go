package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LucasBerthelot/Pulse-Back/internal/auth"
	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/user"
)

// OptionalAuthMiddleware résout l'identité si un token valide est présent,
// sinon laisse passer la requête anonyme
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.Next()
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		username, err := auth.ParseAccessToken(tokenStr)
		if err != nil {
			c.Next()
			return
		}

		var u user.User
		if err := database.WithCtx(c.Request.Context()).
			Where("username = ?", username).
			First(&u).Error; err != nil {
			c.Next()
			return
		}

		c.Set("user_id", u.ID)
		c.Set("username", u.Username)
		c.Next()
	}
}
