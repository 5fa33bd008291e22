package entities

import "time"

// Review rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID         uint      `gorm:"column:review_id;primaryKey" json:"review_id"`
	BookID     uint      `gorm:"column:book_id;not null;index" json:"book_id"`
	UserID     uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	ReviewText *string   `gorm:"column:review_text;type:text" json:"review_text"`
	ReviewDate time.Time `gorm:"column:review_date;autoCreateTime" json:"review_date"`
}

func (Review) TableName() string {
	return "reviews"
}
