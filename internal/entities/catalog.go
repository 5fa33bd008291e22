package entities

import "time"

type Book struct {
	ID              uint      `gorm:"column:book_id;primaryKey" json:"book_id"`
	Title           string    `gorm:"size:512;not null;index" json:"title"`
	PublicationYear *int      `gorm:"column:publication_year" json:"publication_year"`
	Description     *string   `gorm:"type:text" json:"description"`
	CoverURL        *string   `gorm:"column:cover_url;size:2048" json:"cover_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type Author struct {
	ID       uint    `gorm:"column:author_id;primaryKey" json:"author_id"`
	FullName string  `gorm:"column:full_name;size:256;not null;uniqueIndex" json:"full_name"`
	Country  *string `gorm:"size:100" json:"country"`
}

type Genre struct {
	ID   uint   `gorm:"column:genre_id;primaryKey" json:"genre_id"`
	Name string `gorm:"column:genre_name;size:100;not null;uniqueIndex" json:"genre_name"`
}

// BookAuthor and BookGenre are the explicit join rows between books and their
// authors/genres. They are managed directly rather than through gorm
// associations so that the listing and reporting queries can join them by name.
type BookAuthor struct {
	BookID   uint `gorm:"column:book_id;primaryKey" json:"book_id"`
	AuthorID uint `gorm:"column:author_id;primaryKey" json:"author_id"`
}

type BookGenre struct {
	BookID  uint `gorm:"column:book_id;primaryKey" json:"book_id"`
	GenreID uint `gorm:"column:genre_id;primaryKey" json:"genre_id"`
}

func (Book) TableName() string {
	return "books"
}

func (Author) TableName() string {
	return "authors"
}

func (Genre) TableName() string {
	return "genres"
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

func (BookGenre) TableName() string {
	return "book_genres"
}
