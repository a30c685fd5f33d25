package follow

import (
	"time"
)

// Follow arête orientée du graphe social (follower → followee).
// Clé primaire composite : le garde-fou final contre les doublons.
type Follow struct {
	FollowerID uint      `json:"follower_id" gorm:"primaryKey;autoIncrement:false"`
	FolloweeID uint      `json:"followee_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
