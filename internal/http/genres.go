package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/database"
)

type GenresController struct {
	db *database.Database
}

func NewGenresController(db *database.Database) *GenresController {
	return &GenresController{db: db}
}

// List returns all genres ordered by name.
func (gc *GenresController) List(c *gin.Context) {
	genres, err := gc.db.ListGenres()
	if err != nil {
		respondInternalError(c, err, "list genres")
		return
	}
	c.JSON(http.StatusOK, genres)
}
