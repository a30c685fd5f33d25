package post

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/logs"
)

type PostWithStats struct {
	ID            uint      `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	UserID        uint      `json:"user_id"`
	Kind          string    `json:"kind"`
	Text          string    `json:"text"`
	MediaURL      string    `json:"media_url,omitempty"`
	OwnerUsername string    `json:"owner_username"`
	LikesCount    int64     `json:"likes_count"`
	SharesCount   int64     `json:"shares_count"`
}

// GetPostsWithStats GET /api/posts/with_stats?skip=&limit=
// Jointures externes sur des sous-requêtes groupées : un post sans
// like ni partage sort avec des compteurs à 0, jamais omis
func GetPostsWithStats(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	rows := make([]PostWithStats, 0)

	err = database.WithCtx(c.Request.Context()).
		Table("posts").
		Select(`posts.id, posts.created_at, posts.user_id, posts.kind, posts.text, posts.media_url,
			users.username AS owner_username,
			COALESCE(l.likes_count, 0) AS likes_count,
			COALESCE(s.shares_count, 0) AS shares_count`).
		Joins("JOIN users ON users.id = posts.user_id").
		Joins("LEFT JOIN (SELECT post_id, COUNT(user_id) AS likes_count FROM likes GROUP BY post_id) l ON l.post_id = posts.id").
		Joins("LEFT JOIN (SELECT post_id, COUNT(user_id) AS shares_count FROM shares GROUP BY post_id) s ON s.post_id = posts.id").
		Order("posts.created_at DESC").
		Offset(skip).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des posts"})
		logs.LogError("Error during posts with stats retrieval", err, map[string]interface{}{
			"route": c.FullPath(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": rows})
}
