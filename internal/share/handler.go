package share

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/logs"
)

var (
	errAlreadyShared = errors.New("déjà partagé")
	errNotShared     = errors.New("pas encore partagé")
)

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de post invalide"})
		return 0, false
	}
	return uint(id), true
}

func postExists(ctx context.Context, postID uint) (bool, error) {
	var count int64
	err := database.WithCtx(ctx).Table("posts").Where("id = ?", postID).Count(&count).Error
	return count > 0, err
}

// SharePost POST /api/posts/:id/share
// Même contrat de bascule stricte que le like
func SharePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	exists, err := postExists(ctx, postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	err = database.WithCtx(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Share
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		if err == nil {
			return errAlreadyShared
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&Share{
			UserID:    userID,
			PostID:    postID,
			CreatedAt: time.Now().UTC(),
		}).Error
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
		logs.LogJSON("INFO", "Post shared", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	case errors.Is(err, errAlreadyShared), errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "Post déjà partagé"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'ajout du partage"})
		logs.LogError("Error when sharing", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	}
}

// UnsharePost POST /api/posts/:id/unshare
func UnsharePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	exists, err := postExists(ctx, postID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	err = database.WithCtx(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Share
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotShared
		}
		if err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
		logs.LogJSON("INFO", "Post unshared", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	case errors.Is(err, errNotShared):
		c.JSON(http.StatusConflict, gin.H{"error": "Post pas encore partagé"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du partage"})
		logs.LogError("Error when unsharing", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	}
}
