package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/logs"
	"github.com/LucasBerthelot/Pulse-Back/internal/user"
)

// Signup POST /api/users
func Signup(c *gin.Context) {
	route := c.FullPath()

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Champs requis manquants"})
		return
	}
	if utf8.RuneCountInString(input.Username) > 15 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom d'utilisateur trop long (15 caractères max)"})
		return
	}

	// Vérification que username et email n'existent pas déjà
	ctx := c.Request.Context()
	if user.ExistsByUsername(ctx, input.Username) {
		c.JSON(http.StatusConflict, gin.H{"error": "Nom d'utilisateur déjà utilisé"})
		logs.LogJSON("WARN", "Username already taken", map[string]interface{}{
			"route":    route,
			"username": input.Username,
		})
		return
	}
	if user.ExistsByEmail(ctx, input.Email) {
		c.JSON(http.StatusConflict, gin.H{"error": "Email déjà utilisé"})
		logs.LogJSON("WARN", "Email already taken", map[string]interface{}{
			"route": route,
		})
		return
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du hachage du mot de passe"})
		logs.LogError("Password hashing error", err, map[string]interface{}{"route": route})
		return
	}

	newUser := user.User{
		CreatedAt:    time.Now().UTC(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}

	if err := database.WithCtx(ctx).Create(&newUser).Error; err != nil {
		// Deux inscriptions simultanées : la contrainte d'unicité tranche
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "Nom d'utilisateur ou email déjà utilisé"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur insertion base utilisateurs"})
		logs.LogError("User insert error", err, map[string]interface{}{"route": route})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Utilisateur inscrit",
		"user":    newUser,
	})
	logs.LogJSON("INFO", "User registered", map[string]interface{}{
		"route":  route,
		"userID": newUser.ID,
		"extra":  fmt.Sprintf("username : %s", newUser.Username),
	})
}

// Login POST /api/token
func Login(c *gin.Context) {
	route := c.FullPath()

	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}

	var u user.User
	err := database.WithCtx(c.Request.Context()).
		Where("username = ?", input.Username).
		First(&u).Error

	// Même réponse pour utilisateur inconnu et mauvais mot de passe
	if err != nil || !VerifyPassword(input.Password, u.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Nom d'utilisateur ou mot de passe incorrect"})
		logs.LogJSON("WARN", "Failed login attempt", map[string]interface{}{
			"route":    route,
			"username": input.Username,
		})
		return
	}

	token, err := CreateAccessToken(u.Username, DefaultAccessTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du token"})
		logs.LogError("Token creation error", err, map[string]interface{}{
			"route":  route,
			"userID": u.ID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
	logs.LogJSON("INFO", "User logged in", map[string]interface{}{
		"route":  route,
		"userID": u.ID,
	})
}
