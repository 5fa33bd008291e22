// Package bookstores provides the bookstore locator queries.
package bookstores

import (
	"math"
	"sort"

	"gorm.io/gorm"

	"github.com/mkravets/bookcatalog/internal/entities"
)

// MaxNearLimit caps how many stores a single near-lookup may return.
const MaxNearLimit = 50

const earthRadiusKm = 6371.0

// NearResult is a bookstore with its distance from the query point.
type NearResult struct {
	entities.Bookstore
	DistanceKm float64 `json:"distance_km"`
}

// Repository handles all bookstore database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookstores repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns all bookstores.
func (r *Repository) List() ([]entities.Bookstore, error) {
	stores := []entities.Bookstore{}
	err := r.db.Find(&stores).Error
	return stores, err
}

// Near returns up to limit stores ordered by haversine distance from the
// given point. The dataset is small reference data, so the distance is
// computed over the full set rather than pushed into the store.
func (r *Repository) Near(lat, lng float64, limit int) ([]NearResult, error) {
	if limit <= 0 || limit > MaxNearLimit {
		limit = MaxNearLimit
	}

	stores, err := r.List()
	if err != nil {
		return nil, err
	}

	results := make([]NearResult, 0, len(stores))
	for _, store := range stores {
		results = append(results, NearResult{
			Bookstore:  store,
			DistanceKm: haversineKm(lat, lng, store.Latitude, store.Longitude),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Pow(math.Sin(dLng/2), 2)
	return earthRadiusKm * 2 * math.Asin(math.Sqrt(a))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
