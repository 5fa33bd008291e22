package entities

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// ReadingStatus is the shelf a book sits on in a user's reading list.
type ReadingStatus string

const (
	StatusWant     ReadingStatus = "want"
	StatusReading  ReadingStatus = "reading"
	StatusFinished ReadingStatus = "finished"
)

func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusWant, StatusReading, StatusFinished:
		return true
	}
	return false
}

type User struct {
	ID               uint      `gorm:"column:user_id;primaryKey" json:"user_id"`
	Username         string    `gorm:"size:100;not null" json:"username"`
	Email            string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash     string    `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role             UserRole  `gorm:"size:20;not null;default:'user'" json:"role"`
	RegistrationDate time.Time `gorm:"column:registration_date;autoCreateTime" json:"registration_date"`
}

// UserBook is a reading-list entry. The composite primary key gives the
// upsert its uniqueness constraint: re-adding a (user, book) pair overwrites
// the status instead of duplicating the row.
type UserBook struct {
	UserID    uint          `gorm:"column:user_id;primaryKey" json:"user_id"`
	BookID    uint          `gorm:"column:book_id;primaryKey" json:"book_id"`
	Status    ReadingStatus `gorm:"size:20;not null;default:'want'" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

func (UserBook) TableName() string {
	return "user_books"
}
