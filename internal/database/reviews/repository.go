// Package reviews provides database operations for book reviews.
package reviews

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mkravets/bookcatalog/internal/entities"
)

var (
	ErrNotFound     = errors.New("review not found")
	ErrBookNotFound = errors.New("book not found")
)

// WithUser is a review row joined with its author's username.
type WithUser struct {
	ReviewID   uint      `json:"review_id"`
	BookID     uint      `json:"book_id"`
	UserID     uint      `json:"user_id"`
	ReviewText *string   `json:"review_text"`
	Rating     int       `json:"rating"`
	ReviewDate time.Time `json:"review_date"`
	Username   string    `json:"username"`
}

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForBook returns all reviews for a book, newest first, with usernames.
func (r *Repository) ListForBook(bookID uint) ([]WithUser, error) {
	rows := []WithUser{}
	err := r.db.Table("reviews").
		Select(`reviews.review_id, reviews.book_id, reviews.user_id,
			reviews.review_text, reviews.rating, reviews.review_date, users.username`).
		Joins("JOIN users ON users.user_id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.review_date DESC").
		Scan(&rows).Error
	return rows, err
}

// Create stores a new review. ErrBookNotFound when the book does not exist;
// the rating range is the caller's responsibility.
func (r *Repository) Create(bookID, userID uint, rating int, reviewText *string) (*WithUser, error) {
	var book entities.Book
	if err := r.db.Select("book_id").First(&book, bookID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	review := &entities.Review{
		BookID:     bookID,
		UserID:     userID,
		Rating:     rating,
		ReviewText: reviewText,
	}
	if err := r.db.Create(review).Error; err != nil {
		return nil, err
	}
	return r.getWithUser(review.ID)
}

// GetByID returns a review or ErrNotFound. Used for ownership checks before
// updates and deletes.
func (r *Repository) GetByID(id uint) (*entities.Review, error) {
	var review entities.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// Update changes a review's rating and text. A nil rating keeps the stored
// rating; the text is overwritten with whatever is supplied, including nil.
func (r *Repository) Update(id uint, rating *int, reviewText *string) (*WithUser, error) {
	updates := map[string]any{"review_text": reviewText}
	if rating != nil {
		updates["rating"] = *rating
	}

	result := r.db.Model(&entities.Review{}).Where("review_id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.getWithUser(id)
}

// Delete removes a review.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountForUser returns the number of reviews authored by a user.
func (r *Repository) CountForUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Review{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *Repository) getWithUser(id uint) (*WithUser, error) {
	var row WithUser
	err := r.db.Table("reviews").
		Select(`reviews.review_id, reviews.book_id, reviews.user_id,
			reviews.review_text, reviews.rating, reviews.review_date, users.username`).
		Joins("JOIN users ON users.user_id = reviews.user_id").
		Where("reviews.review_id = ?", id).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
