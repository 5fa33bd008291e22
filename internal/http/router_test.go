package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/bookcatalog/internal/auth"
	"github.com/mkravets/bookcatalog/internal/config"
	"github.com/mkravets/bookcatalog/internal/database"
	"github.com/mkravets/bookcatalog/internal/database/authors"
	"github.com/mkravets/bookcatalog/internal/database/books"
	"github.com/mkravets/bookcatalog/internal/database/bookstores"
	"github.com/mkravets/bookcatalog/internal/database/reports"
	"github.com/mkravets/bookcatalog/internal/database/reviews"
	"github.com/mkravets/bookcatalog/internal/database/userbooks"
	"github.com/mkravets/bookcatalog/internal/entities"
)

type testEnv struct {
	db          *database.Database
	router      *gin.Engine
	authService *auth.Service
	books       *books.Repository
	reviews     *reviews.Repository
}

func setupTestEnv(t *testing.T) (*testEnv, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	authCfg := config.Auth{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		BcryptCost:  4,
	}
	authService := auth.NewService(db.DB, authCfg)
	booksRepo := books.NewRepository(db.DB)
	reviewsRepo := reviews.NewRepository(db.DB)

	router := NewRouter(RouterConfig{
		Database:       db,
		Books:          booksRepo,
		Authors:        authors.NewRepository(db.DB),
		Reviews:        reviewsRepo,
		UserBooks:      userbooks.NewRepository(db.DB),
		Reports:        reports.NewRepository(db.DB),
		Bookstores:     bookstores.NewRepository(db.DB),
		AuthService:    authService,
		AuthMiddleware: auth.NewMiddleware(authCfg),
		Version:        "test",
	})

	env := &testEnv{
		db:          db,
		router:      router,
		authService: authService,
		books:       booksRepo,
		reviews:     reviewsRepo,
	}
	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return env, cleanup
}

// registerUser creates an account through the auth service and returns the
// user together with a valid bearer token.
func registerUser(t *testing.T, env *testEnv, username string, role entities.UserRole) (*entities.User, string) {
	t.Helper()

	user, err := env.authService.Register(username, username+"@example.com", "secret123")
	require.NoError(t, err)

	if role != entities.UserRoleUser {
		require.NoError(t, env.db.DB.Model(user).Update("role", role).Error)
		user.Role = role
	}

	token, err := env.authService.IssueToken(user)
	require.NoError(t, err)
	return user, token
}

func doRequest(env *testEnv, method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func createBook(t *testing.T, env *testEnv, title string) *entities.Book {
	t.Helper()
	book, err := env.books.Create(books.CreateInput{Title: title})
	require.NoError(t, err)
	return book
}

func TestHealthEndpoint(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	w := doRequest(env, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status": "healthy"`)
	assert.Contains(t, w.Body.String(), `"version": "test"`)
}

func TestAuthFlow(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	t.Run("register returns token", func(t *testing.T) {
		w := doRequest(env, http.MethodPost, "/api/auth/register", "", gin.H{
			"username": "reader",
			"email":    "reader@example.com",
			"password": "secret123",
		})

		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Token string `json:"token"`
			User  struct {
				Username string `json:"username"`
				Role     string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "reader", resp.User.Username)
		assert.Equal(t, "user", resp.User.Role)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := doRequest(env, http.MethodPost, "/api/auth/register", "", gin.H{
			"username": "other",
			"email":    "READER@example.com",
			"password": "secret123",
		})

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("login and me", func(t *testing.T) {
		w := doRequest(env, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "reader@example.com",
			"password": "secret123",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		me := doRequest(env, http.MethodGet, "/api/auth/me", resp.Token, nil)
		assert.Equal(t, http.StatusOK, me.Code)
		assert.Contains(t, me.Body.String(), `"email":"reader@example.com"`)
	})

	t.Run("wrong password unauthorized", func(t *testing.T) {
		w := doRequest(env, http.MethodPost, "/api/auth/login", "", gin.H{
			"email":    "reader@example.com",
			"password": "nope",
		})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me without token unauthorized", func(t *testing.T) {
		w := doRequest(env, http.MethodGet, "/api/auth/me", "", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestAdminGating(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	_, userToken := registerUser(t, env, "plain", entities.UserRoleUser)
	_, adminToken := registerUser(t, env, "boss", entities.UserRoleAdmin)

	adminOnly := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodPost, "/api/books", gin.H{"title": "X"}},
		{http.MethodDelete, "/api/books/1", nil},
		{http.MethodPost, "/api/authors", gin.H{"full_name": "X"}},
		{http.MethodGet, "/api/reports/summary", nil},
		{http.MethodGet, "/api/reports/summary/csv", nil},
		{http.MethodGet, "/api/reports/genres-stats", nil},
		{http.MethodGet, "/api/reports/reviews-by-day", nil},
	}

	for _, route := range adminOnly {
		w := doRequest(env, route.method, route.path, "", route.body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s without token", route.method, route.path)

		w = doRequest(env, route.method, route.path, userToken, route.body)
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s as plain user", route.method, route.path)
	}

	// The same summary route succeeds for an admin.
	w := doRequest(env, http.MethodGet, "/api/reports/summary", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPublicEndpointsNeedNoToken(t *testing.T) {
	env, cleanup := setupTestEnv(t)
	defer cleanup()

	for _, path := range []string{
		"/api/books",
		"/api/authors",
		"/api/genres",
		"/api/reports/top-books",
		"/api/reports/top-authors",
		"/api/bookstores",
	} {
		w := doRequest(env, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, "GET %s", path)
	}
}
