package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/database/books"
)

// BooksController serves the book listing, comparison, detail and the
// admin-gated catalog mutations.
type BooksController struct {
	repo *books.Repository
}

func NewBooksController(repo *books.Repository) *BooksController {
	return &BooksController{repo: repo}
}

// List returns the filtered, sorted book listing.
func (bc *BooksController) List(c *gin.Context) {
	rows, err := bc.repo.List(books.ListParams{
		Sort:    c.Query("sort"),
		Order:   c.Query("order"),
		Query:   c.Query("q"),
		GenreID: c.Query("genre_id"),
	})
	if err != nil {
		respondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Compare returns the side-by-side view for a comma-separated id list.
func (bc *BooksController) Compare(c *gin.Context) {
	ids, err := books.ParseCompareIDs(c.Query("ids"))
	if err != nil {
		respondBadRequest(c, "at least two book ids are required for comparison")
		return
	}

	rows, err := bc.repo.Compare(ids)
	if err != nil {
		respondInternalError(c, err, "compare books")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetByID returns the enriched single-book view.
func (bc *BooksController) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	detail, err := bc.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "get book")
		return
	}
	c.JSON(http.StatusOK, detail)
}

type createBookRequest struct {
	Title           string  `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	Description     *string `json:"description"`
	CoverURL        *string `json:"cover_url"`
	AuthorIDs       []uint  `json:"author_ids"`
	GenreIDs        []uint  `json:"genre_ids"`
}

type updateBookRequest struct {
	Title           *string `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	Description     *string `json:"description"`
	CoverURL        *string `json:"cover_url"`
	AuthorIDs       *[]uint `json:"author_ids"`
	GenreIDs        *[]uint `json:"genre_ids"`
}

// Create stores a new book with its author and genre links. Admin only.
func (bc *BooksController) Create(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		respondBadRequest(c, "title is required")
		return
	}

	book, err := bc.repo.Create(books.CreateInput{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		CoverURL:        req.CoverURL,
		AuthorIDs:       req.AuthorIDs,
		GenreIDs:        req.GenreIDs,
	})
	if err != nil {
		respondInternalError(c, err, "create book")
		return
	}
	c.JSON(http.StatusCreated, book)
}

// Update applies a partial book update. Admin only.
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var req updateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	book, err := bc.repo.Update(id, books.UpdateInput{
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		Description:     req.Description,
		CoverURL:        req.CoverURL,
		AuthorIDs:       req.AuthorIDs,
		GenreIDs:        req.GenreIDs,
	})
	if err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "update book")
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete removes a book and everything hanging off it. Admin only.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	if err := bc.repo.Delete(id); err != nil {
		if errors.Is(err, books.ErrNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "delete book")
		return
	}
	c.Status(http.StatusNoContent)
}
