package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/database/reports"
)

// ReportsController serves the ranked and aggregated catalog statistics.
// The two "top" lists are public; everything else is admin-gated in the
// router.
type ReportsController struct {
	repo *reports.Repository
}

func NewReportsController(repo *reports.Repository) *ReportsController {
	return &ReportsController{repo: repo}
}

// TopBooks returns the highest-rated books with at least one review.
func (rc *ReportsController) TopBooks(c *gin.Context) {
	rows, err := rc.repo.TopBooks(parseQueryInt(c, "limit"))
	if err != nil {
		respondInternalError(c, err, "top books")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TopAuthors returns the highest-rated authors with at least one review.
func (rc *ReportsController) TopAuthors(c *gin.Context) {
	rows, err := rc.repo.TopAuthors(parseQueryInt(c, "limit"))
	if err != nil {
		respondInternalError(c, err, "top authors")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// Summary returns the global catalog totals.
func (rc *ReportsController) Summary(c *gin.Context) {
	summary, err := rc.repo.GlobalSummary()
	if err != nil {
		respondInternalError(c, err, "summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SummaryCSV renders the global summary as a one-row CSV export. A nil
// average rating becomes an empty field.
func (rc *ReportsController) SummaryCSV(c *gin.Context) {
	summary, err := rc.repo.GlobalSummary()
	if err != nil {
		respondInternalError(c, err, "summary csv")
		return
	}

	avg := ""
	if summary.AvgRating != nil {
		avg = strconv.FormatFloat(*summary.AvgRating, 'f', -1, 64)
	}
	csv := fmt.Sprintf("users_count,books_count,reviews_count,avg_rating\n%d,%d,%d,%s\n",
		summary.UsersCount, summary.BooksCount, summary.ReviewsCount, avg)

	c.Header("Content-Disposition", `attachment; filename="summary.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csv))
}

// GenreStats returns every genre with its distinct book count.
func (rc *ReportsController) GenreStats(c *gin.Context) {
	rows, err := rc.repo.GenreStats()
	if err != nil {
		respondInternalError(c, err, "genre stats")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ReviewsByDay returns per-date review counts over a trailing window.
func (rc *ReportsController) ReviewsByDay(c *gin.Context) {
	rows, err := rc.repo.ReviewsByDay(parseQueryInt(c, "days"))
	if err != nil {
		respondInternalError(c, err, "reviews by day")
		return
	}
	c.JSON(http.StatusOK, rows)
}
