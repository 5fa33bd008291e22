package entities

// Bookstore is read-only reference data used by the store locator.
type Bookstore struct {
	ID        uint    `gorm:"column:store_id;primaryKey" json:"store_id"`
	Name      string  `gorm:"size:256;not null" json:"name"`
	Address   string  `gorm:"size:512" json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Phone     string  `gorm:"size:50" json:"phone"`
	Website   string  `gorm:"size:512" json:"website"`
}

func (Bookstore) TableName() string {
	return "bookstores"
}
