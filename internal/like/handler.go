package like

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/logs"
)

var (
	errAlreadyLiked = errors.New("déjà liké")
	errNotLiked     = errors.New("pas encore liké")
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

// LikePost POST /api/posts/:id/like
// Bascule stricte : liker un post déjà liké échoue
func LikePost(c *gin.Context) {
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
		logs.LogError("Database error", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	// Vérification et insertion dans une même transaction
	err = database.WithCtx(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		if err == nil {
			return errAlreadyLiked
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&Like{UserID: userID, PostID: postID}).Error
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
		logs.LogJSON("INFO", "Post liked", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	case errors.Is(err, errAlreadyLiked), errors.Is(err, gorm.ErrDuplicatedKey):
		c.JSON(http.StatusConflict, gin.H{"error": "Post déjà liké"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'ajout du like"})
		logs.LogError("Error when liking", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	}
}

// UnlikePost POST /api/posts/:id/unlike
func UnlikePost(c *gin.Context) {
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
		var existing Like
		err := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotLiked
		}
		if err != nil {
			return err
		}
		return tx.Delete(&existing).Error
	})

	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
		logs.LogJSON("INFO", "Post unliked", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	case errors.Is(err, errNotLiked):
		c.JSON(http.StatusConflict, gin.H{"error": "Post pas encore liké"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du like"})
		logs.LogError("Error when unliking", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
	}
}

// GetLikeStatus GET /api/posts/:id/likes
func GetLikeStatus(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id") // 0 si non connecté

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

	status, err := getLikeStatus(ctx, postID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de base de données"})
		logs.LogError("Like status error", err, map[string]interface{}{
			"route":  c.FullPath(),
			"postID": postID,
		})
		return
	}

	c.JSON(http.StatusOK, status)
}

func getLikeStatus(ctx context.Context, postID, userID uint) (LikeResponse, error) {
	db := database.WithCtx(ctx)

	var likeCount int64
	if err := db.Model(&Like{}).Where("post_id = ?", postID).Count(&likeCount).Error; err != nil {
		return LikeResponse{}, err
	}

	var isLiked bool
	if userID != 0 {
		var existing Like
		err := db.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error
		switch {
		case err == nil:
			isLiked = true
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return LikeResponse{}, err
		}
	}

	return LikeResponse{
		PostID:    postID,
		LikeCount: likeCount,
		IsLiked:   isLiked,
	}, nil
}
