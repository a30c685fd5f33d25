package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/LucasBerthelot/Pulse-Back/internal/auth"
)

func runMiddleware(t *testing.T, handler gin.HandlerFunc, authHeader string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		c.Request.Header.Set("Authorization", authHeader)
	}
	handler(c)
	return c, w
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	c, w := runMiddleware(t, AuthMiddleware(), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.True(t, c.IsAborted())
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	_, w := runMiddleware(t, AuthMiddleware(), "Basic abc123")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	_, w := runMiddleware(t, AuthMiddleware(), "Bearer pas.un.jwt")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token invalide")
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	token, err := auth.CreateAccessToken("alice", -1*time.Minute)
	assert.NoError(t, err)

	_, w := runMiddleware(t, AuthMiddleware(), "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expiré")
}

func TestOptionalAuthMiddlewareAnonymous(t *testing.T) {
	c, w := runMiddleware(t, OptionalAuthMiddleware(), "")

	// La requête anonyme passe, sans identité posée
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, c.IsAborted())
	assert.Equal(t, uint(0), c.GetUint("user_id"))
}

func TestOptionalAuthMiddlewareBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-de-test")

	c, w := runMiddleware(t, OptionalAuthMiddleware(), "Bearer pas.un.jwt")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(0), c.GetUint("user_id"))
}
