package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/LucasBerthelot/Pulse-Back/internal/auth"
	"github.com/LucasBerthelot/Pulse-Back/internal/config"
	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/follow"
	"github.com/LucasBerthelot/Pulse-Back/internal/like"
	"github.com/LucasBerthelot/Pulse-Back/internal/logs"
	"github.com/LucasBerthelot/Pulse-Back/internal/middleware"
	"github.com/LucasBerthelot/Pulse-Back/internal/post"
	"github.com/LucasBerthelot/Pulse-Back/internal/share"
	"github.com/LucasBerthelot/Pulse-Back/internal/storage"
	"github.com/LucasBerthelot/Pulse-Back/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()
	if cfg.DBUrl == "" {
		panic("DATABASE_URL manquant")
	}
	if cfg.JWTSecret == "" {
		panic("JWT_SECRET manquant")
	}

	database.Connect(cfg.DBUrl)

	if err := database.DB.AutoMigrate(
		&user.User{},
		&post.Post{},
		&like.Like{},
		&share.Share{},
		&follow.Follow{},
	); err != nil {
		panic(err)
	}

	// Sans bucket configuré le serveur démarre quand même, seuls les
	// posts média seront refusés
	if err := storage.InitS3(); err != nil {
		logs.LogError("S3 init failed, media posts disabled", err, nil)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Inscription & Connexion
	api.POST("/users", auth.Signup)
	api.POST("/token", auth.Login)

	// Lecture publique
	api.GET("/posts", post.GetPosts)
	api.GET("/posts/with_stats", post.GetPostsWithStats)
	api.GET("/posts/:id/likes", middleware.OptionalAuthMiddleware(), like.GetLikeStatus)
	api.GET("/users/:id", middleware.OptionalAuthMiddleware(), user.GetUser)
	api.GET("/users/:id/followers", follow.GetFollowers)

	// Opérations authentifiées
	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())

	authed.GET("/me", user.GetMe)
	authed.GET("/following", follow.GetFollowing)
	authed.POST("/users/:id/follow", follow.FollowUser)
	authed.POST("/users/:id/unfollow", follow.UnfollowUser)

	authed.POST("/posts", post.CreatePost)
	authed.PUT("/posts/:id", post.UpdatePost)
	authed.DELETE("/posts/:id", post.DeletePost)

	authed.POST("/posts/:id/like", like.LikePost)
	authed.POST("/posts/:id/unlike", like.UnlikePost)
	authed.POST("/posts/:id/share", share.SharePost)
	authed.POST("/posts/:id/unshare", share.UnsharePost)

	if err := r.Run(":" + cfg.Port); err != nil {
		panic(err)
	}
}
