package post

import (
	"time"

	"github.com/LucasBerthelot/Pulse-Back/internal/user"
)

// Kinds de contenu : un seul modèle paramétré plutôt que deux
// modèles quasi identiques texte/média
const (
	KindText  = "text"
	KindMedia = "media"
)

type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `json:"user_id"`
	User      user.User `json:"-" gorm:"foreignKey:UserID"`
	Kind      string    `json:"kind" gorm:"size:15;default:text"`
	Text      string    `json:"text" gorm:"size:127;not null"`
	MediaURL  string    `json:"media_url,omitempty"`
}
