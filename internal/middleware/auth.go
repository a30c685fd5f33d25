package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LucasBerthelot/Pulse-Back/internal/auth"
	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/user"
)

// AuthMiddleware résout l'identité de l'appelant depuis le token Bearer.
// Toute opération mutante passe par ici : pas d'identité, pas d'accès.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token requis"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		username, err := auth.ParseAccessToken(tokenStr)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token expiré"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token invalide"})
			}
			return
		}

		var u user.User
		if err := database.WithCtx(c.Request.Context()).
			Where("username = ?", username).
			First(&u).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur inconnu"})
			return
		}

		c.Set("user_id", u.ID)
		c.Set("username", u.Username)
		c.Next()
	}
}
