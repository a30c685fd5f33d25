package like

// Like état de bascule (user, post) : au plus une ligne par paire,
// garanti par la clé primaire composite
type Like struct {
	UserID uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	PostID uint `json:"post_id" gorm:"primaryKey;autoIncrement:false"`
}

type LikeResponse struct {
	PostID    uint  `json:"post_id"`
	LikeCount int64 `json:"like_count"`
	IsLiked   bool  `json:"is_liked"`
}

func (Like) TableName() string {
	return "likes"
}
