package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/bookcatalog/internal/config"
	"github.com/mkravets/bookcatalog/internal/entities"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	middleware := NewMiddleware(config.Auth{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
	})

	router := gin.New()
	router.GET("/protected", middleware.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	router.GET("/admin", middleware.RequireAuth(), middleware.RequireRole(RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	return router
}

func issueTestToken(t *testing.T, role entities.UserRole) string {
	token, err := IssueToken(&entities.User{
		ID:       7,
		Username: "reader",
		Email:    "reader@example.com",
		Role:     role,
	}, "test-secret", time.Hour)
	require.NoError(t, err)
	return token
}

func TestMiddleware_RequireAuth_MissingHeader(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_RequireAuth_MalformedHeader(t *testing.T) {
	router := setupTestRouter(t)

	for _, header := range []string{"Bearer", "Basic abc123", "token-without-scheme"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header: %s", header)
	}
}

func TestMiddleware_RequireAuth_ValidToken(t *testing.T) {
	router := setupTestRouter(t)
	token := issueTestToken(t, entities.UserRoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}

func TestMiddleware_RequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	router := setupTestRouter(t)
	token := issueTestToken(t, entities.UserRoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_RequireAuth_WrongSecret(t *testing.T) {
	router := setupTestRouter(t)
	token, err := IssueToken(&entities.User{ID: 7}, "other-secret", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMiddleware_RequireRole_NonAdminForbidden(t *testing.T) {
	router := setupTestRouter(t)
	token := issueTestToken(t, entities.UserRoleUser)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMiddleware_RequireRole_AdminAllowed(t *testing.T) {
	router := setupTestRouter(t)
	token := issueTestToken(t, entities.UserRoleAdmin)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddleware_RequireRole_FailsClosedWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	middleware := NewMiddleware(config.Auth{JWTSecret: "test-secret"})

	// RequireRole registered without RequireAuth in front of it.
	router := gin.New()
	router.GET("/admin", middleware.RequireRole(RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
