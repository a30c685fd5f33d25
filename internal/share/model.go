package share

import (
	"time"
)

// Share même invariant de bascule que Like, avec l'horodatage du partage
type Share struct {
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID    uint      `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time `json:"created_at"`
}

func (Share) TableName() string {
	return "shares"
}
