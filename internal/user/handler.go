package user

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/logs"
)

// GetUser GET /api/users/:id
// Profil public, l'email n'est montré qu'à son propriétaire
func GetUser(c *gin.Context) {
	route := c.FullPath()

	currentUserID := c.GetUint("user_id")

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant utilisateur invalide"})
		return
	}

	db := database.WithCtx(c.Request.Context())

	var u User
	if err := db.First(&u, "id = ?", uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		logs.LogJSON("WARN", "User not found", map[string]interface{}{
			"route":  route,
			"userID": currentUserID,
			"extra":  fmt.Sprintf("User not found : %d", id),
		})
		return
	}

	profile := gin.H{
		"id":         u.ID,
		"username":   u.Username,
		"created_at": u.CreatedAt,
	}
	if u.ID == currentUserID {
		profile["email"] = u.Email
	}

	var followersCount, followingCount, postsCount int64
	if err := db.Table("follows").Where("followee_id = ?", u.ID).Count(&followersCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des statistiques"})
		logs.LogError("User stats error", err, map[string]interface{}{"route": route, "userID": u.ID})
		return
	}
	if err := db.Table("follows").Where("follower_id = ?", u.ID).Count(&followingCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des statistiques"})
		logs.LogError("User stats error", err, map[string]interface{}{"route": route, "userID": u.ID})
		return
	}
	if err := db.Table("posts").Where("user_id = ?", u.ID).Count(&postsCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des statistiques"})
		logs.LogError("User stats error", err, map[string]interface{}{"route": route, "userID": u.ID})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": profile,
		"stats": gin.H{
			"followers_count": followersCount,
			"following_count": followingCount,
			"posts_count":     postsCount,
		},
	})
}
