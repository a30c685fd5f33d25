package post

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
	"github.com/LucasBerthelot/Pulse-Back/internal/like"
	"github.com/LucasBerthelot/Pulse-Back/internal/logs"
	"github.com/LucasBerthelot/Pulse-Back/internal/share"
	"github.com/LucasBerthelot/Pulse-Back/internal/storage"
)

const maxTextLen = 127

func parsePostID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de post invalide"})
		return 0, false
	}
	return uint(id), true
}

// CreatePost POST /api/posts
// Corps JSON → post texte ; corps multipart avec fichier "media" → post média
func CreatePost(c *gin.Context) {
	route := c.FullPath()

	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		createMediaPost(c, userID)
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide"})
		return
	}
	if input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le texte est obligatoire"})
		return
	}
	if utf8.RuneCountInString(input.Text) > maxTextLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Texte trop long (127 caractères max)"})
		return
	}

	newPost := Post{
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
		Kind:      KindText,
		Text:      input.Text,
	}

	if err := database.WithCtx(c.Request.Context()).Create(&newPost).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du post"})
		logs.LogError("Post creation error", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post créé avec succès",
		"post":    newPost,
	})
	logs.LogJSON("INFO", "Post created", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": newPost.ID,
	})
}

func createMediaPost(c *gin.Context, userID uint) {
	route := c.FullPath()

	if !storage.Ready() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Stockage média non configuré"})
		return
	}

	text := c.PostForm("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le texte est obligatoire"})
		return
	}
	if utf8.RuneCountInString(text) > maxTextLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Texte trop long (127 caractères max)"})
		return
	}

	file, header, err := c.Request.FormFile("media")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun média fourni", "details": err.Error()})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	validExtensions := map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true,
		".gif": true, ".webp": true, ".heic": true,
		".mp4": true, ".mov": true, ".avi": true,
	}
	if !validExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Extension de fichier invalide"})
		return
	}

	filename := fmt.Sprintf("post_%s%s", uuid.New().String(), ext)
	contentType := header.Header.Get("Content-Type")

	url, err := storage.UploadToS3(file, filename, contentType, "posts")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload", "details": err.Error()})
		logs.LogError("Media upload error", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
		})
		return
	}

	newPost := Post{
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
		Kind:      KindMedia,
		Text:      text,
		MediaURL:  url,
	}

	if err := database.WithCtx(c.Request.Context()).Create(&newPost).Error; err != nil {
		// L'insertion a échoué : on retire le fichier déjà uploadé
		if key := storage.KeyFromURL(url); key != "" {
			_ = storage.DeleteFromS3(key)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du post"})
		logs.LogError("Post creation error", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post créé avec succès",
		"post":    newPost,
	})
}

// GetPosts GET /api/posts?skip=&limit=
// Posts du plus récent au plus ancien
func GetPosts(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit <= 0 {
		limit = 5
	}

	posts := make([]Post, 0)
	if err := database.WithCtx(c.Request.Context()).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des posts"})
		logs.LogError("Error during posts retrieval", err, map[string]interface{}{
			"route": c.FullPath(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// UpdatePost PUT /api/posts/:id
// Modifiable uniquement par son auteur, dans l'heure suivant la création
func UpdatePost(c *gin.Context) {
	route := c.FullPath()

	userID := c.GetUint("user_id")
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := c.BindJSON(&input); err != nil || input.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le texte est obligatoire"})
		return
	}
	if utf8.RuneCountInString(input.Text) > maxTextLen {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Texte trop long (127 caractères max)"})
		return
	}

	db := database.WithCtx(c.Request.Context())

	var p Post
	if err := db.First(&p, "id = ?", postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
		return
	}

	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous ne pouvez modifier que vos propres posts"})
		logs.LogJSON("WARN", "Edit attempt on foreign post", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	if !withinEditWindow(p.CreatedAt, time.Now()) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Un post ne peut être modifié que dans l'heure suivant sa création"})
		return
	}

	// Seul le texte change, l'horodatage de création reste intact
	p.Text = input.Text
	if err := db.Model(&p).Update("text", p.Text).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du post"})
		logs.LogError("Post update error", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": p})
}

// DeletePost DELETE /api/posts/:id
// Un seul 404 pour "absent" et "pas le propriétaire" : ne révèle pas
// l'existence d'un post qui ne vous appartient pas
func DeletePost(c *gin.Context) {
	route := c.FullPath()

	userID := c.GetUint("user_id")
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	db := database.WithCtx(c.Request.Context())

	var p Post
	if err := db.First(&p, "id = ? AND user_id = ?", postID, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé ou vous n'êtes pas autorisé à le supprimer"})
		return
	}

	// Le post part avec ses likes et ses partages, en une transaction
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&like.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&share.Share{}).Error; err != nil {
			return err
		}
		return tx.Delete(&p).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du post"})
		logs.LogError("Post deletion error", err, map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	// Sans stockage configuré on laisse le fichier : l'entrée en base est
	// la source de vérité et elle est déjà supprimée
	if p.MediaURL != "" && storage.Ready() {
		if key := storage.KeyFromURL(p.MediaURL); key != "" {
			if err := storage.DeleteFromS3(key); err != nil {
				// L'entrée en base est déjà partie, on ne bloque pas pour le fichier
				logs.LogError("Media deletion error", err, map[string]interface{}{
					"route":  route,
					"postID": postID,
				})
			}
		}
	}

	c.Status(http.StatusNoContent)
	logs.LogJSON("INFO", "Post deleted", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": postID,
	})
}
