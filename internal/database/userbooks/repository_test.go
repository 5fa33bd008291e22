package userbooks

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mkravets/bookcatalog/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_userbooks_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Book{},
		&entities.User{},
		&entities.UserBook{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestBook(t *testing.T, db *gorm.DB, title string) *entities.Book {
	book := &entities.Book{Title: title}
	require.NoError(t, db.Create(book).Error)
	return book
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	user := &entities.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         entities.UserRoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRepository_Upsert_InsertsThenOverwritesStatus(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")
	book := createTestBook(t, db, "Book")

	require.NoError(t, repo.Upsert(user.ID, book.ID, entities.StatusWant))
	require.NoError(t, repo.Upsert(user.ID, book.ID, entities.StatusReading))

	var rows []entities.UserBook
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, entities.StatusReading, rows[0].Status)
}

func TestRepository_ListForUser(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")
	other := createTestUser(t, db, "other")
	year := 1961
	book := &entities.Book{Title: "Solaris", PublicationYear: &year}
	require.NoError(t, db.Create(book).Error)
	otherBook := createTestBook(t, db, "Not Mine")

	require.NoError(t, repo.Upsert(user.ID, book.ID, entities.StatusFinished))
	require.NoError(t, repo.Upsert(other.ID, otherBook.ID, entities.StatusWant))

	rows, err := repo.ListForUser(user.ID)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, book.ID, rows[0].BookID)
	assert.Equal(t, "Solaris", rows[0].Title)
	require.NotNil(t, rows[0].PublicationYear)
	assert.Equal(t, 1961, *rows[0].PublicationYear)
	assert.Equal(t, entities.StatusFinished, rows[0].Status)
}

func TestRepository_Delete(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")
	book := createTestBook(t, db, "Book")
	require.NoError(t, repo.Upsert(user.ID, book.ID, entities.StatusWant))

	require.NoError(t, repo.Delete(user.ID, book.ID))

	rows, err := repo.ListForUser(user.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRepository_Delete_NotFound(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	user := createTestUser(t, db, "reader")

	assert.ErrorIs(t, repo.Delete(user.ID, 999), ErrNotFound)
}
