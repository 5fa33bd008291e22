package bookstores

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
	dbPath := "./test_bookstores_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&entities.Bookstore{}))

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func createTestStore(t *testing.T, db *gorm.DB, name string, lat, lng float64) *entities.Bookstore {
	store := &entities.Bookstore{Name: name, Latitude: lat, Longitude: lng}
	require.NoError(t, db.Create(store).Error)
	return store
}

func TestRepository_Near_OrderedByDistance(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	// Query point is central Berlin.
	berlin := createTestStore(t, db, "Berlin Store", 52.5200, 13.4050)
	paris := createTestStore(t, db, "Paris Store", 48.8566, 2.3522)
	tokyo := createTestStore(t, db, "Tokyo Store", 35.6762, 139.6503)

	results, err := repo.Near(52.52, 13.405, 10)

	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, berlin.Name, results[0].Name)
	assert.Equal(t, paris.Name, results[1].Name)
	assert.Equal(t, tokyo.Name, results[2].Name)

	assert.InDelta(t, 0, results[0].DistanceKm, 0.01)
	// Berlin to Paris is roughly 880 km as the crow flies.
	assert.InDelta(t, 880, results[1].DistanceKm, 20)
}

func TestRepository_Near_LimitApplied(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		createTestStore(t, db, "Store", float64(i), float64(i))
	}

	results, err := repo.Near(0, 0, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// Out-of-range limits fall back to the cap.
	results, err = repo.Near(0, 0, 0)
	require.NoError(t, err)
	assert.Len(t, results, 5)

	results, err = repo.Near(0, 0, MaxNearLimit+1)
	require.NoError(t, err)
	assert.Len(t, results, 5)
}

func TestRepository_List(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	createTestStore(t, db, "A", 1, 1)
	createTestStore(t, db, "B", 2, 2)

	stores, err := repo.List()

	require.NoError(t, err)
	assert.Len(t, stores, 2)
}
