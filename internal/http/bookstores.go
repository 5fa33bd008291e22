package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/database/bookstores"
)

type BookstoresController struct {
	repo *bookstores.Repository
}

func NewBookstoresController(repo *bookstores.Repository) *BookstoresController {
	return &BookstoresController{repo: repo}
}

// List returns all bookstores.
func (bc *BookstoresController) List(c *gin.Context) {
	stores, err := bc.repo.List()
	if err != nil {
		respondInternalError(c, err, "list bookstores")
		return
	}
	c.JSON(http.StatusOK, stores)
}

// Near returns the stores closest to the supplied coordinates.
func (bc *BookstoresController) Near(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		respondBadRequest(c, "lat and lng parameters are required")
		return
	}

	limit := parseQueryInt(c, "limit")
	if limit == 0 {
		limit = 10
	}

	stores, err := bc.repo.Near(lat, lng, limit)
	if err != nil {
		respondInternalError(c, err, "nearby bookstores")
		return
	}
	c.JSON(http.StatusOK, stores)
}
