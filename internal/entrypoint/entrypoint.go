package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/auth"
	"github.com/mkravets/bookcatalog/internal/config"
	"github.com/mkravets/bookcatalog/internal/database"
	"github.com/mkravets/bookcatalog/internal/database/authors"
	"github.com/mkravets/bookcatalog/internal/database/books"
	"github.com/mkravets/bookcatalog/internal/database/bookstores"
	"github.com/mkravets/bookcatalog/internal/database/reports"
	"github.com/mkravets/bookcatalog/internal/database/reviews"
	"github.com/mkravets/bookcatalog/internal/database/userbooks"
	http_controllers "github.com/mkravets/bookcatalog/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting bookcatalog v%s", version)

	if cfg.Auth.JWTSecret == "" {
		log.Fatalf("JWT_SECRET is not set")
	}

	// Initialize database
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	authService := auth.NewService(db.DB, cfg.Auth)
	authMiddleware := auth.NewMiddleware(cfg.Auth)

	routerCfg := http_controllers.RouterConfig{
		Database:       db,
		Books:          books.NewRepository(db.DB),
		Authors:        authors.NewRepository(db.DB),
		Reviews:        reviews.NewRepository(db.DB),
		UserBooks:      userbooks.NewRepository(db.DB),
		Reports:        reports.NewRepository(db.DB),
		Bookstores:     bookstores.NewRepository(db.DB),
		AuthService:    authService,
		AuthMiddleware: authMiddleware,
		Version:        version,
	}

	router := http_controllers.NewRouter(routerCfg)

	Serve(router, cfg, nil)
}
