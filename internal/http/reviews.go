package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mkravets/bookcatalog/internal/auth"
	"github.com/mkravets/bookcatalog/internal/database/reviews"
	"github.com/mkravets/bookcatalog/internal/entities"
)

// ReviewsController serves review listing and the owner-or-admin mutations.
type ReviewsController struct {
	repo *reviews.Repository
}

func NewReviewsController(repo *reviews.Repository) *ReviewsController {
	return &ReviewsController{repo: repo}
}

// ListForBook returns all reviews for a book, newest first.
func (rc *ReviewsController) ListForBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	rows, err := rc.repo.ListForBook(bookID)
	if err != nil {
		respondInternalError(c, err, "list reviews")
		return
	}
	c.JSON(http.StatusOK, rows)
}

type createReviewRequest struct {
	Rating     int     `json:"rating"`
	ReviewText *string `json:"review_text"`
}

type updateReviewRequest struct {
	Rating     *int    `json:"rating"`
	ReviewText *string `json:"review_text"`
}

func validRating(rating int) bool {
	return rating >= entities.MinRating && rating <= entities.MaxRating
}

// Create stores a new review by the authenticated user.
func (rc *ReviewsController) Create(c *gin.Context) {
	bookID, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if !validRating(req.Rating) {
		respondBadRequest(c, "rating must be between 1 and 5")
		return
	}

	row, err := rc.repo.Create(bookID, auth.GetUserID(c), req.Rating, req.ReviewText)
	if err != nil {
		if errors.Is(err, reviews.ErrBookNotFound) {
			respondNotFound(c, "book")
			return
		}
		respondInternalError(c, err, "create review")
		return
	}
	c.JSON(http.StatusCreated, row)
}

// Update changes a review. Only its author or an admin may do so.
func (rc *ReviewsController) Update(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	original, err := rc.repo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			respondNotFound(c, "review")
			return
		}
		respondInternalError(c, err, "get review")
		return
	}
	if !rc.canModify(c, original) {
		respondForbidden(c)
		return
	}

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Rating != nil && !validRating(*req.Rating) {
		respondBadRequest(c, "rating must be between 1 and 5")
		return
	}

	row, err := rc.repo.Update(reviewID, req.Rating, req.ReviewText)
	if err != nil {
		respondInternalError(c, err, "update review")
		return
	}
	c.JSON(http.StatusOK, row)
}

// Delete removes a review. Only its author or an admin may do so.
func (rc *ReviewsController) Delete(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	original, err := rc.repo.GetByID(reviewID)
	if err != nil {
		if errors.Is(err, reviews.ErrNotFound) {
			respondNotFound(c, "review")
			return
		}
		respondInternalError(c, err, "get review")
		return
	}
	if !rc.canModify(c, original) {
		respondForbidden(c)
		return
	}

	if err := rc.repo.Delete(reviewID); err != nil {
		respondInternalError(c, err, "delete review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (rc *ReviewsController) canModify(c *gin.Context, review *entities.Review) bool {
	return auth.GetRole(c) == auth.RoleAdmin || auth.GetUserID(c) == review.UserID
}
