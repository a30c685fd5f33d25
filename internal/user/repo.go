package user

import (
	"context"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
)

func ExistsByEmail(ctx context.Context, email string) bool {
	var count int64
	database.WithCtx(ctx).Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func ExistsByUsername(ctx context.Context, username string) bool {
	var count int64
	database.WithCtx(ctx).Model(&User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

func ExistsByID(ctx context.Context, id uint) bool {
	var count int64
	database.WithCtx(ctx).Model(&User{}).Where("id = ?", id).Count(&count)
	return count > 0
}
