package user

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func newTestContext(t *testing.T, currentUserID uint, paramID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if currentUserID != 0 {
		c.Set("user_id", currentUserID)
	}
	c.Params = gin.Params{{Key: "id", Value: paramID}}
	return c, w
}

func aliceRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "created_at", "username", "email", "hashed_passwd"}).
		AddRow(2, time.Now(), "alice", "a@x.com", "hash")
}

func TestGetUserHidesForeignEmail(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).WillReturnRows(aliceRow())
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT count`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	// L'appelant (1) consulte le profil d'alice (2)
	c, w := newTestContext(t, 1, "2")
	GetUser(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
	assert.Contains(t, w.Body.String(), `"followers_count":3`)
	assert.NotContains(t, w.Body.String(), "a@x.com")
}

func TestGetUserStatsError(t *testing.T) {
	mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT`).WillReturnRows(aliceRow())
	// Un comptage qui échoue donne un 500, pas des statistiques à zéro
	mock.ExpectQuery(`SELECT count`).
		WillReturnError(errors.New("connexion perdue"))

	c, w := newTestContext(t, 1, "2")
	GetUser(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
