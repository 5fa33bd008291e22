package http

import (
	"github.com/mkravets/bookcatalog/internal/auth"
	"github.com/mkravets/bookcatalog/internal/database"
	"github.com/mkravets/bookcatalog/internal/database/authors"
	"github.com/mkravets/bookcatalog/internal/database/books"
	"github.com/mkravets/bookcatalog/internal/database/bookstores"
	"github.com/mkravets/bookcatalog/internal/database/reports"
	"github.com/mkravets/bookcatalog/internal/database/reviews"
	"github.com/mkravets/bookcatalog/internal/database/userbooks"
)

// RouterConfig holds all dependencies needed by the router. Everything is
// injected so tests can wire routers against throwaway databases.
type RouterConfig struct {
	Database   *database.Database
	Books      *books.Repository
	Authors    *authors.Repository
	Reviews    *reviews.Repository
	UserBooks  *userbooks.Repository
	Reports    *reports.Repository
	Bookstores *bookstores.Repository

	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware

	Version string
}
