package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	requireAuth := cfg.AuthMiddleware.RequireAuth()
	requireAdmin := cfg.AuthMiddleware.RequireRole(auth.RoleAdmin)

	// Controllers
	health := NewHealthController(cfg.Database, cfg.Version)
	authController := auth.NewController(cfg.AuthService)
	booksController := NewBooksController(cfg.Books)
	reviewsController := NewReviewsController(cfg.Reviews)
	authorsController := NewAuthorsController(cfg.Authors)
	genresController := NewGenresController(cfg.Database)
	reportsController := NewReportsController(cfg.Reports)
	userBooksController := NewUserBooksController(cfg.UserBooks)
	meController := NewMeController(cfg.AuthService, cfg.Reviews, cfg.UserBooks)
	bookstoresController := NewBookstoresController(cfg.Bookstores)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")

	// Authentication
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.GET("/auth/me", requireAuth, authController.Me)

	// Book catalog
	api.GET("/books", booksController.List)
	api.GET("/books/compare", booksController.Compare)
	api.GET("/books/:book_id", booksController.GetByID)
	api.POST("/books", requireAuth, requireAdmin, booksController.Create)
	api.PUT("/books/:book_id", requireAuth, requireAdmin, booksController.Update)
	api.DELETE("/books/:book_id", requireAuth, requireAdmin, booksController.Delete)

	// Reviews
	api.GET("/reviews/books/:book_id", reviewsController.ListForBook)
	api.POST("/reviews/books/:book_id", requireAuth, reviewsController.Create)
	api.PUT("/reviews/:review_id", requireAuth, reviewsController.Update)
	api.DELETE("/reviews/:review_id", requireAuth, reviewsController.Delete)

	// Authors and genres
	api.GET("/authors", authorsController.List)
	api.POST("/authors", requireAuth, requireAdmin, authorsController.Create)
	api.GET("/genres", genresController.List)

	// Reports: the two top lists are public, the rest is admin only
	api.GET("/reports/top-books", reportsController.TopBooks)
	api.GET("/reports/top-authors", reportsController.TopAuthors)
	api.GET("/reports/summary", requireAuth, requireAdmin, reportsController.Summary)
	api.GET("/reports/summary/csv", requireAuth, requireAdmin, reportsController.SummaryCSV)
	api.GET("/reports/genres-stats", requireAuth, requireAdmin, reportsController.GenreStats)
	api.GET("/reports/reviews-by-day", requireAuth, requireAdmin, reportsController.ReviewsByDay)

	// Reading lists and profile
	api.GET("/user/books", requireAuth, userBooksController.List)
	api.POST("/user/books", requireAuth, userBooksController.Upsert)
	api.DELETE("/user/books/:book_id", requireAuth, userBooksController.Delete)
	api.GET("/me/summary", requireAuth, meController.Summary)

	// Bookstore locator
	api.GET("/bookstores", bookstoresController.List)
	api.GET("/bookstores/near", bookstoresController.Near)

	return router
}
