// Package reports computes the ranked and aggregated catalog statistics:
// top books, top authors, genre distribution, time-bucketed review counts and
// the global summary. Everything is derived from the live data at query time;
// nothing is cached or precomputed.
package reports

import (
	"time"

	"gorm.io/gorm"

	"github.com/mkravets/bookcatalog/internal/entities"
)

const (
	DefaultTopBooksLimit   = 10
	DefaultTopAuthorsLimit = 5
	MaxTopLimit            = 100

	DefaultReviewWindowDays = 14
	MaxReviewWindowDays     = 365
)

// TopBook is a ranked book row: rating desc, then review count desc, then
// title asc.
type TopBook struct {
	BookID          uint    `json:"book_id"`
	Title           string  `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	AvgRating       float64 `json:"avg_rating"`
	ReviewsCount    int     `json:"reviews_count"`
}

// TopAuthor is a ranked author row. ReviewsCount is counted through the
// book_authors join, so a review on a co-authored book counts once per
// co-author; BooksCount is distinct-counted to avoid the same fan-out.
type TopAuthor struct {
	AuthorID     uint    `json:"author_id"`
	FullName     string  `json:"full_name"`
	BooksCount   int     `json:"books_count"`
	ReviewsCount int     `json:"reviews_count"`
	AvgRating    float64 `json:"avg_rating"`
}

// GenreStat is one genre with its distinct book count. Genres with no books
// are included with a zero count.
type GenreStat struct {
	GenreID    uint   `json:"genre_id"`
	GenreName  string `json:"genre_name"`
	BooksCount int    `json:"books_count"`
}

// DailyCount is one calendar-date bucket of review activity. Dates with no
// reviews are not emitted.
type DailyCount struct {
	Label        string `json:"label"`
	ReviewsCount int    `json:"reviews_count"`
}

// Summary is the global catalog rollup. AvgRating is nil when there are no
// reviews at all.
type Summary struct {
	UsersCount   int64    `json:"users_count"`
	BooksCount   int64    `json:"books_count"`
	ReviewsCount int64    `json:"reviews_count"`
	AvgRating    *float64 `json:"avg_rating"`
}

// Repository handles all reporting queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reports repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > MaxTopLimit {
		return MaxTopLimit
	}
	return limit
}

// TopBooks returns the highest-rated books with at least one review.
func (r *Repository) TopBooks(limit int) ([]TopBook, error) {
	rows := []TopBook{}
	err := r.db.Table("books").
		Select(`books.book_id,
			books.title,
			books.publication_year,
			ROUND(COALESCE(AVG(reviews.rating), 0), 2) AS avg_rating,
			COUNT(reviews.review_id) AS reviews_count`).
		Joins("LEFT JOIN reviews ON reviews.book_id = books.book_id").
		Group("books.book_id").
		Having("reviews_count > 0").
		Order("avg_rating DESC, reviews_count DESC, books.title ASC").
		Limit(clampLimit(limit, DefaultTopBooksLimit)).
		Scan(&rows).Error
	return rows, err
}

// TopAuthors returns the highest-rated authors with at least one review
// across any authored book.
func (r *Repository) TopAuthors(limit int) ([]TopAuthor, error) {
	rows := []TopAuthor{}
	err := r.db.Table("authors").
		Select(`authors.author_id,
			authors.full_name,
			COUNT(DISTINCT books.book_id) AS books_count,
			COUNT(reviews.review_id) AS reviews_count,
			ROUND(COALESCE(AVG(reviews.rating), 0), 2) AS avg_rating`).
		Joins("JOIN book_authors ON book_authors.author_id = authors.author_id").
		Joins("JOIN books ON books.book_id = book_authors.book_id").
		Joins("JOIN reviews ON reviews.book_id = books.book_id").
		Group("authors.author_id").
		Having("reviews_count > 0").
		Order("avg_rating DESC, reviews_count DESC, authors.full_name ASC").
		Limit(clampLimit(limit, DefaultTopAuthorsLimit)).
		Scan(&rows).Error
	return rows, err
}

// GenreStats returns every genre with its distinct book count, largest first.
func (r *Repository) GenreStats() ([]GenreStat, error) {
	rows := []GenreStat{}
	err := r.db.Table("genres").
		Select(`genres.genre_id,
			genres.genre_name,
			COUNT(DISTINCT book_genres.book_id) AS books_count`).
		Joins("LEFT JOIN book_genres ON book_genres.genre_id = genres.genre_id").
		Group("genres.genre_id, genres.genre_name").
		Order("books_count DESC, genres.genre_name ASC").
		Scan(&rows).Error
	return rows, err
}

// ReviewsByDay buckets review counts by calendar date over a trailing window
// of the given number of days, clamped to [1, 365] with a 14-day default.
func (r *Repository) ReviewsByDay(days int) ([]DailyCount, error) {
	if days == 0 {
		days = DefaultReviewWindowDays
	}
	if days < 1 {
		days = 1
	}
	if days > MaxReviewWindowDays {
		days = MaxReviewWindowDays
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := midnight.AddDate(0, 0, -days)

	rows := []DailyCount{}
	err := r.db.Table("reviews").
		Select("DATE(review_date) AS label, COUNT(*) AS reviews_count").
		Where("review_date >= ?", cutoff).
		Group("DATE(review_date)").
		Order("DATE(review_date) ASC").
		Scan(&rows).Error
	return rows, err
}

// GlobalSummary returns catalog-wide totals and the overall average rating.
func (r *Repository) GlobalSummary() (*Summary, error) {
	var summary Summary

	if err := r.db.Model(&entities.User{}).Count(&summary.UsersCount).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&entities.Book{}).Count(&summary.BooksCount).Error; err != nil {
		return nil, err
	}

	var reviewStats struct {
		ReviewsCount int64
		AvgRating    *float64
	}
	err := r.db.Table("reviews").
		Select("COUNT(*) AS reviews_count, ROUND(AVG(rating), 2) AS avg_rating").
		Scan(&reviewStats).Error
	if err != nil {
		return nil, err
	}
	summary.ReviewsCount = reviewStats.ReviewsCount
	summary.AvgRating = reviewStats.AvgRating

	return &summary, nil
}
