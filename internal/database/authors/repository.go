// Package authors provides database operations for author management.
package authors

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/mkravets/bookcatalog/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all authors ordered by name.
func (r *Repository) List() ([]entities.Author, error) {
	var authors []entities.Author
	err := r.db.Order("full_name ASC").Find(&authors).Error
	return authors, err
}

// GetOrCreate returns the author with the given name, creating it when
// absent. The name match is case-insensitive, so a create request for an
// existing author returns the existing record rather than duplicating it.
func (r *Repository) GetOrCreate(fullName string, country *string) (*entities.Author, bool, error) {
	fullName = strings.TrimSpace(fullName)

	var existing entities.Author
	err := r.db.Where("LOWER(full_name) = ?", strings.ToLower(fullName)).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	author := &entities.Author{FullName: fullName, Country: country}
	if err := r.db.Create(author).Error; err != nil {
		return nil, false, err
	}
	return author, true, nil
}
