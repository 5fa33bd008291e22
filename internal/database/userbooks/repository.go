// Package userbooks provides database operations for user reading lists.
package userbooks

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mkravets/bookcatalog/internal/entities"
)

var ErrNotFound = errors.New("book not found in user's list")

// Entry is a reading-list row joined with the book's display fields.
type Entry struct {
	BookID          uint                   `json:"book_id"`
	Status          entities.ReadingStatus `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	Title           string                 `json:"title"`
	PublicationYear *int                   `json:"publication_year"`
	CoverURL        *string                `gorm:"column:cover_url" json:"cover_url"`
}

// Repository handles all reading-list database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reading-list repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForUser returns the user's reading-list entries, newest first.
func (r *Repository) ListForUser(userID uint) ([]Entry, error) {
	rows := []Entry{}
	err := r.db.Table("user_books").
		Select(`user_books.book_id, user_books.status, user_books.created_at,
			books.title, books.publication_year, books.cover_url`).
		Joins("JOIN books ON books.book_id = user_books.book_id").
		Where("user_books.user_id = ?", userID).
		Order("user_books.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// Upsert adds a book to the user's list or, when the (user, book) pair
// already exists, overwrites its status.
func (r *Repository) Upsert(userID, bookID uint, status entities.ReadingStatus) error {
	entry := entities.UserBook{
		UserID: userID,
		BookID: bookID,
		Status: status,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status"}),
	}).Create(&entry).Error
}

// Delete removes a book from the user's list. ErrNotFound when absent.
func (r *Repository) Delete(userID, bookID uint) error {
	result := r.db.Where("user_id = ? AND book_id = ?", userID, bookID).Delete(&entities.UserBook{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
