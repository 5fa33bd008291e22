// Package books provides the catalog query layer for books: the filtered
// listing, the comparison and detail views, and the admin-gated mutations.
//
// Every read carries derived rating statistics computed from the live review
// set at query time. Reviews, authors and genres are left-joined, so the
// aggregation counts distinct review identities to keep join fan-out from
// inflating the numbers.
package books

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mkravets/bookcatalog/internal/entities"
)

var ErrNotFound = errors.New("book not found")

// ErrTooFewIDs is returned by Compare when fewer than two valid book ids
// survive parsing.
var ErrTooFewIDs = errors.New("at least two book ids are required")

// sortColumns is the closed set of caller-facing sort keys. Caller input is
// only ever used to look up a column here, never spliced into the query.
var sortColumns = map[string]string{
	"title":   "books.title",
	"year":    "books.publication_year",
	"rating":  "avg_rating",
	"reviews": "reviews_count",
}

// ListParams are the optional listing filters. GenreID is kept as the raw
// query-string value: non-numeric values are silently ignored.
type ListParams struct {
	Sort    string
	Order   string
	Query   string
	GenreID string
}

// Summary is one row of the book listing with its derived statistics.
type Summary struct {
	BookID          uint    `json:"book_id"`
	Title           string  `json:"title"`
	PublicationYear *int    `json:"publication_year"`
	Description     *string `json:"description"`
	CoverURL        *string `gorm:"column:cover_url" json:"cover_url"`
	AvgRating       float64 `json:"avg_rating"`
	ReviewsCount    int     `json:"reviews_count"`
}

// Detail is the single-book view: the summary plus structured author and
// genre sub-lists.
type Detail struct {
	Summary
	Authors []entities.Author `json:"authors"`
	Genres  []entities.Genre  `json:"genres"`
}

// Comparison is one row of the side-by-side view. Authors and genres are
// flattened into comma-joined strings (distinct, alphabetical) on purpose;
// the detail view keeps them structured.
type Comparison struct {
	Summary
	Authors string `json:"authors"`
	Genres  string `json:"genres"`
}

// CreateInput holds the admin-supplied fields for a new book.
type CreateInput struct {
	Title           string
	PublicationYear *int
	Description     *string
	CoverURL        *string
	AuthorIDs       []uint
	GenreIDs        []uint
}

// UpdateInput holds a partial book update. Nil title leaves the stored title
// untouched; nil AuthorIDs/GenreIDs leave the join sets alone, while empty
// slices clear them.
type UpdateInput struct {
	Title           *string
	PublicationYear *int
	Description     *string
	CoverURL        *string
	AuthorIDs       *[]uint
	GenreIDs        *[]uint
}

// Repository handles all book catalog database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const summaryColumns = `books.book_id,
	books.title,
	books.publication_year,
	books.description,
	books.cover_url,
	ROUND(COALESCE(AVG(reviews.rating), 0), 2) AS avg_rating,
	COUNT(DISTINCT reviews.review_id) AS reviews_count`

// List returns the full book list matching the supplied filters, each row
// carrying computed avg_rating and reviews_count. Books with no reviews are
// included with zeroed statistics. No pagination.
func (r *Repository) List(params ListParams) ([]Summary, error) {
	sortColumn, recognized := sortColumns[params.Sort]
	if !recognized {
		sortColumn = sortColumns["title"]
	}

	direction := "ASC"
	if params.Order != "" {
		if strings.EqualFold(params.Order, "desc") {
			direction = "DESC"
		}
	} else if params.Sort == "rating" || params.Sort == "reviews" {
		// Best-first browsing when no explicit order is requested.
		direction = "DESC"
	}

	query := r.db.Table("books").
		Select(summaryColumns).
		Joins("LEFT JOIN reviews ON reviews.book_id = books.book_id").
		Joins("LEFT JOIN book_authors ON book_authors.book_id = books.book_id").
		Joins("LEFT JOIN authors ON authors.author_id = book_authors.author_id").
		Joins("LEFT JOIN book_genres ON book_genres.book_id = books.book_id")

	if q := strings.TrimSpace(params.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(books.title) LIKE ? OR LOWER(authors.full_name) LIKE ?", pattern, pattern)
	}

	if params.GenreID != "" {
		if genreID, err := strconv.Atoi(params.GenreID); err == nil {
			query = query.Where("book_genres.genre_id = ?", genreID)
		}
	}

	var rows []Summary
	err := query.
		Group("books.book_id").
		Order(sortColumn + " " + direction).
		Scan(&rows).Error
	return rows, err
}

// GetByID returns the enriched single-book view or ErrNotFound.
func (r *Repository) GetByID(id uint) (*Detail, error) {
	var book entities.Book
	if err := r.db.First(&book, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	detail := &Detail{
		Summary: Summary{
			BookID:          book.ID,
			Title:           book.Title,
			PublicationYear: book.PublicationYear,
			Description:     book.Description,
			CoverURL:        book.CoverURL,
		},
		Authors: []entities.Author{},
		Genres:  []entities.Genre{},
	}

	err := r.db.Table("authors").
		Select("authors.author_id, authors.full_name, authors.country").
		Joins("JOIN book_authors ON book_authors.author_id = authors.author_id").
		Where("book_authors.book_id = ?", id).
		Order("authors.full_name ASC").
		Scan(&detail.Authors).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Table("genres").
		Select("genres.genre_id, genres.genre_name").
		Joins("JOIN book_genres ON book_genres.genre_id = genres.genre_id").
		Where("book_genres.book_id = ?", id).
		Order("genres.genre_name ASC").
		Scan(&detail.Genres).Error
	if err != nil {
		return nil, err
	}

	var stats struct {
		AvgRating    float64
		ReviewsCount int
	}
	err = r.db.Table("reviews").
		Select("ROUND(COALESCE(AVG(rating), 0), 2) AS avg_rating, COUNT(*) AS reviews_count").
		Where("book_id = ?", id).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	detail.AvgRating = stats.AvgRating
	detail.ReviewsCount = stats.ReviewsCount

	return detail, nil
}

// ParseCompareIDs parses a comma-separated id list, dropping anything that is
// not a positive integer. ErrTooFewIDs when fewer than two ids remain.
func ParseCompareIDs(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n <= 0 {
			continue
		}
		ids = append(ids, uint(n))
	}
	if len(ids) < 2 {
		return nil, ErrTooFewIDs
	}
	return ids, nil
}

// Compare returns one row per existing requested book. Ids that match no book
// are simply absent from the result.
func (r *Repository) Compare(ids []uint) ([]Comparison, error) {
	if len(ids) < 2 {
		return nil, ErrTooFewIDs
	}

	var rows []Comparison
	err := r.db.Table("books").
		Select(summaryColumns).
		Joins("LEFT JOIN reviews ON reviews.book_id = books.book_id").
		Where("books.book_id IN ?", ids).
		Group("books.book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	authorNames, err := r.relatedNames(
		"authors", "authors.full_name", "book_authors", "book_authors.author_id = authors.author_id", ids)
	if err != nil {
		return nil, err
	}
	genreNames, err := r.relatedNames(
		"genres", "genres.genre_name", "book_genres", "book_genres.genre_id = genres.genre_id", ids)
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].Authors = joinDistinctSorted(authorNames[rows[i].BookID])
		rows[i].Genres = joinDistinctSorted(genreNames[rows[i].BookID])
	}
	return rows, nil
}

// relatedNames collects author or genre names per book id over a join table.
func (r *Repository) relatedNames(table, nameColumn, joinTable, joinCondition string, bookIDs []uint) (map[uint][]string, error) {
	var rows []struct {
		BookID uint
		Name   string
	}
	err := r.db.Table(table).
		Select(joinTable+".book_id AS book_id, "+nameColumn+" AS name").
		Joins("JOIN "+joinTable+" ON "+joinCondition).
		Where(joinTable+".book_id IN ?", bookIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	names := make(map[uint][]string)
	for _, row := range rows {
		names[row.BookID] = append(names[row.BookID], row.Name)
	}
	return names, nil
}

func joinDistinctSorted(names []string) string {
	seen := make(map[string]bool, len(names))
	distinct := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			distinct = append(distinct, name)
		}
	}
	sort.Strings(distinct)
	return strings.Join(distinct, ", ")
}

// Create inserts a book and its author/genre join rows.
func (r *Repository) Create(input CreateInput) (*entities.Book, error) {
	book := &entities.Book{
		Title:           input.Title,
		PublicationYear: input.PublicationYear,
		Description:     input.Description,
		CoverURL:        input.CoverURL,
	}
	if err := r.db.Create(book).Error; err != nil {
		return nil, err
	}

	if err := r.replaceAuthors(book.ID, input.AuthorIDs); err != nil {
		return nil, err
	}
	if err := r.replaceGenres(book.ID, input.GenreIDs); err != nil {
		return nil, err
	}
	return book, nil
}

// Update applies a partial book update. ErrNotFound when the book is absent.
func (r *Repository) Update(id uint, input UpdateInput) (*entities.Book, error) {
	var existing entities.Book
	if err := r.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]any{
		"publication_year": input.PublicationYear,
		"description":      input.Description,
		"cover_url":        input.CoverURL,
	}
	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		updates["title"] = *input.Title
	}
	if err := r.db.Model(&entities.Book{}).Where("book_id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	if input.AuthorIDs != nil {
		if err := r.db.Where("book_id = ?", id).Delete(&entities.BookAuthor{}).Error; err != nil {
			return nil, err
		}
		if err := r.replaceAuthors(id, *input.AuthorIDs); err != nil {
			return nil, err
		}
	}
	if input.GenreIDs != nil {
		if err := r.db.Where("book_id = ?", id).Delete(&entities.BookGenre{}).Error; err != nil {
			return nil, err
		}
		if err := r.replaceGenres(id, *input.GenreIDs); err != nil {
			return nil, err
		}
	}

	var updated entities.Book
	if err := r.db.First(&updated, id).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a book, its join rows, reviews and reading-list entries.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.Book{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	if err := r.db.Where("book_id = ?", id).Delete(&entities.BookAuthor{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("book_id = ?", id).Delete(&entities.BookGenre{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("book_id = ?", id).Delete(&entities.Review{}).Error; err != nil {
		return err
	}
	return r.db.Where("book_id = ?", id).Delete(&entities.UserBook{}).Error
}

func (r *Repository) replaceAuthors(bookID uint, authorIDs []uint) error {
	if len(authorIDs) == 0 {
		return nil
	}
	rows := make([]entities.BookAuthor, 0, len(authorIDs))
	for _, authorID := range authorIDs {
		rows = append(rows, entities.BookAuthor{BookID: bookID, AuthorID: authorID})
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func (r *Repository) replaceGenres(bookID uint, genreIDs []uint) error {
	if len(genreIDs) == 0 {
		return nil
	}
	rows := make([]entities.BookGenre, 0, len(genreIDs))
	for _, genreID := range genreIDs {
		rows = append(rows, entities.BookGenre{BookID: bookID, GenreID: genreID})
	}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
