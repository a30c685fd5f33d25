package like

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LucasBerthelot/Pulse-Back/internal/database"
)

func setupMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})
	db, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	originalDB := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = originalDB })

	return mock
}

func newTestContext(t *testing.T, userID uint, paramID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	if userID != 0 {
		c.Set("user_id", userID)
	}
	c.Params = gin.Params{{Key: "id", Value: paramID}}
	return c, w
}

func TestLikePostNotFound(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	c, w := newTestContext(t, 1, "1")
	LikePost(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post non trouvé")
}

func TestLikePostAlreadyLiked(t *testing.T) {
	mock := setupMockDB(t)

	// Le post existe
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	// Le like existe déjà : bascule stricte, la transaction est annulée
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "post_id"}).AddRow(1, 1))
	mock.ExpectRollback()

	c, w := newTestContext(t, 1, "1")
	LikePost(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "déjà liké")
}

func TestUnlikePostNotLiked(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT`).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "post_id"}))
	mock.ExpectRollback()

	c, w := newTestContext(t, 1, "1")
	UnlikePost(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "pas encore liké")
}

func TestLikePostInvalidID(t *testing.T) {
	c, w := newTestContext(t, 1, "abc")

	LikePost(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLikeStatusCountError(t *testing.T) {
	mock := setupMockDB(t)

	// Le post existe mais le comptage échoue : 500, pas un statut à zéro
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count`).
		WillReturnError(errors.New("connexion perdue"))

	c, w := newTestContext(t, 0, "1")
	GetLikeStatus(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetLikeStatusAnonymous(t *testing.T) {
	mock := setupMockDB(t)

	// Le post existe
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	// Compteur de likes ; pas de requête is_liked pour un anonyme
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	c, w := newTestContext(t, 0, "1")
	GetLikeStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"like_count":3`)
	assert.Contains(t, w.Body.String(), `"is_liked":false`)
}
