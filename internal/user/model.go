package user

import "time"

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	Username     string    `json:"username" gorm:"size:15;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:127;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;column:hashed_passwd;not null"`
}

// Summary projection publique d'un utilisateur : jamais d'email
type Summary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
