package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/auth"
	"github.com/mkravets/bookcatalog/internal/database/userbooks"
	"github.com/mkravets/bookcatalog/internal/entities"
)

// UserBooksController serves the authenticated user's reading list.
type UserBooksController struct {
	repo *userbooks.Repository
}

func NewUserBooksController(repo *userbooks.Repository) *UserBooksController {
	return &UserBooksController{repo: repo}
}

// List returns the caller's reading-list entries, newest first.
func (uc *UserBooksController) List(c *gin.Context) {
	rows, err := uc.repo.ListForUser(auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list user books")
		return
	}
	c.JSON(http.StatusOK, rows)
}

type upsertUserBookRequest struct {
	BookID uint   `json:"book_id"`
	Status string `json:"status"`
}

// Upsert adds a book to the caller's list or overwrites its status.
// An unrecognized status falls back to "want".
func (uc *UserBooksController) Upsert(c *gin.Context) {
	var req upsertUserBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.BookID == 0 {
		respondBadRequest(c, "invalid book_id")
		return
	}

	status := entities.ReadingStatus(req.Status)
	if !status.Valid() {
		status = entities.StatusWant
	}

	if err := uc.repo.Upsert(auth.GetUserID(c), req.BookID, status); err != nil {
		respondInternalError(c, err, "upsert user book")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Delete removes a book from the caller's list.
func (uc *UserBooksController) Delete(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	if err := uc.repo.Delete(auth.GetUserID(c), bookID); err != nil {
		if errors.Is(err, userbooks.ErrNotFound) {
			respondNotFound(c, "book in user's list")
			return
		}
		respondInternalError(c, err, "delete user book")
		return
	}
	c.Status(http.StatusNoContent)
}
