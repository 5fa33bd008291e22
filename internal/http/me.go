package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/auth"
	"github.com/mkravets/bookcatalog/internal/database/reviews"
	"github.com/mkravets/bookcatalog/internal/database/userbooks"
	"github.com/mkravets/bookcatalog/internal/entities"
)

// MeController serves the authenticated user's profile summary.
type MeController struct {
	authService *auth.Service
	reviews     *reviews.Repository
	userBooks   *userbooks.Repository
}

func NewMeController(authService *auth.Service, reviewsRepo *reviews.Repository, userBooksRepo *userbooks.Repository) *MeController {
	return &MeController{
		authService: authService,
		reviews:     reviewsRepo,
		userBooks:   userBooksRepo,
	}
}

type readingLists struct {
	Want     []userbooks.Entry `json:"want"`
	Reading  []userbooks.Entry `json:"reading"`
	Finished []userbooks.Entry `json:"finished"`
}

type meStats struct {
	ReviewsCount int64          `json:"reviews_count"`
	BooksTotal   int            `json:"books_total"`
	ListsCounts  map[string]int `json:"lists_counts"`
}

// Summary returns the profile row, review count and reading lists grouped
// by status.
func (mc *MeController) Summary(c *gin.Context) {
	userID := auth.GetUserID(c)

	user, err := mc.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "me summary")
		return
	}

	reviewsCount, err := mc.reviews.CountForUser(userID)
	if err != nil {
		respondInternalError(c, err, "me summary")
		return
	}

	entries, err := mc.userBooks.ListForUser(userID)
	if err != nil {
		respondInternalError(c, err, "me summary")
		return
	}

	lists := readingLists{
		Want:     []userbooks.Entry{},
		Reading:  []userbooks.Entry{},
		Finished: []userbooks.Entry{},
	}
	for _, entry := range entries {
		switch entry.Status {
		case entities.StatusReading:
			lists.Reading = append(lists.Reading, entry)
		case entities.StatusFinished:
			lists.Finished = append(lists.Finished, entry)
		default:
			lists.Want = append(lists.Want, entry)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
		"stats": meStats{
			ReviewsCount: reviewsCount,
			BooksTotal:   len(entries),
			ListsCounts: map[string]int{
				"want":     len(lists.Want),
				"reading":  len(lists.Reading),
				"finished": len(lists.Finished),
			},
		},
		"lists": lists,
	})
}
