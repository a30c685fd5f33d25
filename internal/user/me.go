package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
)

// GetMe GET /api/me
func GetMe(c *gin.Context) {
	userID := c.GetUint("user_id")

	var u User
	if err := database.WithCtx(c.Request.Context()).First(&u, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}})
}
