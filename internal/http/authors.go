package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/database/authors"
)

type AuthorsController struct {
	repo *authors.Repository
}

func NewAuthorsController(repo *authors.Repository) *AuthorsController {
	return &AuthorsController{repo: repo}
}

// List returns all authors ordered by name.
func (ac *AuthorsController) List(c *gin.Context) {
	rows, err := ac.repo.List()
	if err != nil {
		respondInternalError(c, err, "list authors")
		return
	}
	c.JSON(http.StatusOK, rows)
}

type createAuthorRequest struct {
	FullName string  `json:"full_name"`
	Country  *string `json:"country"`
}

// Create adds an author idempotently: an existing name (case-insensitive)
// returns the existing record with 200 instead of creating a duplicate.
func (ac *AuthorsController) Create(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		respondBadRequest(c, "author name is required")
		return
	}

	author, created, err := ac.repo.GetOrCreate(req.FullName, req.Country)
	if err != nil {
		respondInternalError(c, err, "create author")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, author)
}
