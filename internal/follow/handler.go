package follow

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/logs"
	"github.com/LucasBerthelot/Pulse-Back/internal/user"
)

var (
	errAlreadyFollowing = errors.New("déjà suivi")
	errNotFollowing     = errors.New("pas encore suivi")
)

func parseUserID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant utilisateur invalide"})
		return 0, false
	}
	return uint(id), true
}

// FollowUser POST /api/users/:id/follow
func FollowUser(c *gin.Context) {
	route := c.FullPath()

	followerID := c.GetUint("user_id")
	followeeID, ok := parseUserID(c)
	if !ok {
		return
	}

	if followerID == followeeID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de se suivre soi-même"})
		logs.LogJSON("WARN", "Impossible to follow yourself", map[string]interface{}{
			"route":  route,
			"userID": followerID,
		})
		return
	}

	ctx := c.Request.Context()
	if !user.ExistsByID(ctx, followeeID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		logs.LogJSON("WARN", "Followee not found", map[string]interface{}{
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followeeID : %d", followeeID),
		})
		return
	}

	// Vérification et insertion dans une même transaction
	err := database.WithCtx(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&existing).Error
		if err == nil {
			return errAlreadyFollowing
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&Follow{
			FollowerID: followerID,
			FolloweeID: followeeID,
			CreatedAt:  time.Now().UTC(),
		}).Error
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
		logs.LogJSON("INFO", "Followed user", map[string]interface{}{
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followeeID : %d", followeeID),
		})
	case errors.Is(err, errAlreadyFollowing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Déjà suivi"})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		// Deux requêtes concurrentes ont passé la vérification : la clé composite tranche
		c.JSON(http.StatusConflict, gin.H{"error": "Déjà suivi"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur ajout du follow"})
		logs.LogError("Error adding follow", err, map[string]interface{}{
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followeeID : %d", followeeID),
		})
	}
}

// UnfollowUser POST /api/users/:id/unfollow
func UnfollowUser(c *gin.Context) {
	route := c.FullPath()

	followerID := c.GetUint("user_id")
	followeeID, ok := parseUserID(c)
	if !ok {
		return
	}

	if followerID == followeeID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Impossible de se désabonner de soi-même"})
		return
	}

	ctx := c.Request.Context()
	if !user.ExistsByID(ctx, followeeID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	err := database.WithCtx(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Follow
		err := tx.Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFollowing
		}
		if err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
		logs.LogJSON("INFO", "Unfollowed user", map[string]interface{}{
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followeeID : %d", followeeID),
		})
	case errors.Is(err, errNotFollowing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Utilisateur pas encore suivi"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur unfollow"})
		logs.LogError("Error unfollow", err, map[string]interface{}{
			"route":  route,
			"userID": followerID,
			"extra":  fmt.Sprintf("followeeID : %d", followeeID),
		})
	}
}

// GetFollowing GET /api/following
func GetFollowing(c *gin.Context) {
	route := c.FullPath()

	followerID := c.GetUint("user_id")
	db := database.WithCtx(c.Request.Context())

	var follows []Follow
	if err := db.Where("follower_id = ?", followerID).Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des abonnements"})
		logs.LogError("Error retrieving following", err, map[string]interface{}{
			"route":  route,
			"userID": followerID,
		})
		return
	}

	ids := make([]uint, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FolloweeID)
	}

	followed := make([]user.Summary, 0)
	if len(ids) > 0 {
		if err := db.Table("users").
			Select("id, username, created_at").
			Where("id IN ?", ids).
			Scan(&followed).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des utilisateurs suivis"})
			logs.LogError("Error retrieving followed users", err, map[string]interface{}{
				"route":  route,
				"userID": followerID,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"following": followed})
}

// GetFollowers GET /api/users/:id/followers
func GetFollowers(c *gin.Context) {
	route := c.FullPath()

	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if !user.ExistsByID(ctx, userID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur non trouvé"})
		return
	}

	db := database.WithCtx(ctx)

	var follows []Follow
	if err := db.Where("followee_id = ?", userID).Find(&follows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération followers"})
		logs.LogError("Error retrieving followers", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
		})
		return
	}

	ids := make([]uint, 0, len(follows))
	for _, f := range follows {
		ids = append(ids, f.FollowerID)
	}

	followers := make([]user.Summary, 0)
	if len(ids) > 0 {
		if err := db.Table("users").
			Select("id, username, created_at").
			Where("id IN ?", ids).
			Scan(&followers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération des utilisateurs followers"})
			logs.LogError("Error retrieving follower users", err, map[string]interface{}{
				"route":  route,
				"userID": userID,
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers})
}
