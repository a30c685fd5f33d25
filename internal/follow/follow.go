package follow

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
)

// IsFollowing requête d'existence ciblée sur la table d'arêtes,
// jamais de chargement de collection complète
func IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	var edge Follow
	err := database.WithCtx(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		First(&edge).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
