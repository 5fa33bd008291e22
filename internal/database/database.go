package database

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mkravets/bookcatalog/internal/entities"
)

var defaultGenres = []entities.Genre{
	{Name: "Classics"},
	{Name: "Fantasy"},
	{Name: "Science Fiction"},
	{Name: "Detective"},
	{Name: "Non-fiction"},
	{Name: "Poetry"},
	{Name: "History"},
	{Name: "Biography"},
}

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Author{},
		&entities.Genre{},
		&entities.Book{},
		&entities.BookAuthor{},
		&entities.BookGenre{},
		&entities.Review{},
		&entities.UserBook{},
		&entities.Bookstore{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	database := &Database{DB: db}

	// Seed the genre reference data
	if err := database.seedGenres(); err != nil {
		return nil, fmt.Errorf("failed to seed genres: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) seedGenres() error {
	for _, genre := range defaultGenres {
		var existing entities.Genre
		result := d.DB.Where("genre_name = ?", genre.Name).First(&existing)
		if result.Error == gorm.ErrRecordNotFound {
			if err := d.DB.Create(&genre).Error; err != nil {
				return fmt.Errorf("failed to create genre %s: %w", genre.Name, err)
			}
		}
	}
	return nil
}

// ListGenres returns all genres ordered by name.
func (d *Database) ListGenres() ([]entities.Genre, error) {
	var genres []entities.Genre
	err := d.DB.Order("genre_name ASC").Find(&genres).Error
	return genres, err
}
