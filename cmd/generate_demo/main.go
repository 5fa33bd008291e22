// Command generate_demo creates a demo catalog database with sample data.
// Usage: go run cmd/generate_demo/main.go [-db path/to/demo.db]
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/mkravets/bookcatalog/internal/auth"
	"github.com/mkravets/bookcatalog/internal/database"
	"github.com/mkravets/bookcatalog/internal/database/authors"
	"github.com/mkravets/bookcatalog/internal/database/books"
	"github.com/mkravets/bookcatalog/internal/database/reviews"
	"github.com/mkravets/bookcatalog/internal/database/userbooks"
	"github.com/mkravets/bookcatalog/internal/entities"
)

const defaultDemoDatabasePath = "./demo/demo.db"

func main() {
	dbPath := flag.String("db", defaultDemoDatabasePath, "path to the demo database file")
	flag.Parse()

	log.Printf("Generating demo database at %s...", *dbPath)

	// Delete existing demo database to start fresh
	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	db, err := database.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("Failed to create database: %v", err)
	}
	defer db.Close()

	users := createUsers(db)
	authorIDs := createAuthors(db)
	bookIDs := createBooks(db, authorIDs)
	createReviews(db, users, bookIDs)
	createReadingLists(db, users, bookIDs)
	createBookstores(db)

	log.Println("Demo database generated successfully!")
}

func createUsers(db *database.Database) []entities.User {
	specs := []struct {
		username string
		email    string
		role     entities.UserRole
	}{
		{"admin", "admin@example.com", entities.UserRoleAdmin},
		{"alice", "alice@example.com", entities.UserRoleUser},
		{"bob", "bob@example.com", entities.UserRoleUser},
		{"charlie", "charlie@example.com", entities.UserRoleUser},
	}

	var users []entities.User
	for _, spec := range specs {
		hash, err := auth.HashPassword("demo-password", 10)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}
		user := entities.User{
			Username:     spec.username,
			Email:        spec.email,
			PasswordHash: hash,
			Role:         spec.role,
		}
		if err := db.DB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", spec.username, err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users (password: demo-password)", len(users))
	return users
}

func createAuthors(db *database.Database) map[string]uint {
	repo := authors.NewRepository(db.DB)

	specs := []struct {
		name    string
		country string
	}{
		{"Leo Tolstoy", "Russia"},
		{"Fyodor Dostoevsky", "Russia"},
		{"Jane Austen", "United Kingdom"},
		{"Ursula K. Le Guin", "United States"},
		{"Stanislaw Lem", "Poland"},
		{"Arkady Strugatsky", "Russia"},
		{"Boris Strugatsky", "Russia"},
	}

	ids := make(map[string]uint)
	for _, spec := range specs {
		country := spec.country
		author, _, err := repo.GetOrCreate(spec.name, &country)
		if err != nil {
			log.Fatalf("Failed to create author %s: %v", spec.name, err)
		}
		ids[spec.name] = author.ID
	}
	log.Printf("Created %d authors", len(ids))
	return ids
}

func createBooks(db *database.Database, authorIDs map[string]uint) []uint {
	repo := books.NewRepository(db.DB)

	genres, err := db.ListGenres()
	if err != nil {
		log.Fatalf("Failed to list genres: %v", err)
	}
	genreByName := make(map[string]uint, len(genres))
	for _, genre := range genres {
		genreByName[genre.Name] = genre.ID
	}

	year := func(y int) *int { return &y }
	text := func(s string) *string { return &s }

	specs := []struct {
		input   books.CreateInput
		authors []string
		genres  []string
	}{
		{
			input: books.CreateInput{
				Title:           "War and Peace",
				PublicationYear: year(1869),
				Description:     text("Napoleonic-era epic following five aristocratic families."),
			},
			authors: []string{"Leo Tolstoy"},
			genres:  []string{"Classics", "History"},
		},
		{
			input: books.CreateInput{
				Title:           "Crime and Punishment",
				PublicationYear: year(1866),
				Description:     text("A destitute student commits a murder and unravels."),
			},
			authors: []string{"Fyodor Dostoevsky"},
			genres:  []string{"Classics"},
		},
		{
			input: books.CreateInput{
				Title:           "Pride and Prejudice",
				PublicationYear: year(1813),
			},
			authors: []string{"Jane Austen"},
			genres:  []string{"Classics"},
		},
		{
			input: books.CreateInput{
				Title:           "The Left Hand of Darkness",
				PublicationYear: year(1969),
			},
			authors: []string{"Ursula K. Le Guin"},
			genres:  []string{"Science Fiction"},
		},
		{
			input: books.CreateInput{
				Title:           "Solaris",
				PublicationYear: year(1961),
			},
			authors: []string{"Stanislaw Lem"},
			genres:  []string{"Science Fiction"},
		},
		{
			input: books.CreateInput{
				Title:           "Roadside Picnic",
				PublicationYear: year(1972),
				Description:     text("Stalkers scavenge artifacts from an alien visitation zone."),
			},
			authors: []string{"Arkady Strugatsky", "Boris Strugatsky"},
			genres:  []string{"Science Fiction"},
		},
	}

	var ids []uint
	for _, spec := range specs {
		for _, name := range spec.authors {
			spec.input.AuthorIDs = append(spec.input.AuthorIDs, authorIDs[name])
		}
		for _, name := range spec.genres {
			if id, ok := genreByName[name]; ok {
				spec.input.GenreIDs = append(spec.input.GenreIDs, id)
			}
		}

		book, err := repo.Create(spec.input)
		if err != nil {
			log.Fatalf("Failed to create book %s: %v", spec.input.Title, err)
		}
		log.Printf("Saved: %s", book.Title)
		ids = append(ids, book.ID)
	}
	return ids
}

func createReviews(db *database.Database, users []entities.User, bookIDs []uint) {
	repo := reviews.NewRepository(db.DB)
	text := func(s string) *string { return &s }

	specs := []struct {
		user    int
		book    int
		rating  int
		text    *string
		daysAgo int
	}{
		{1, 0, 5, text("A lifetime in a single book."), 1},
		{2, 0, 5, nil, 3},
		{3, 0, 4, text("Long, but worth it."), 3},
		{1, 1, 5, text("Relentless and brilliant."), 2},
		{2, 1, 4, nil, 6},
		{1, 3, 5, nil, 0},
		{2, 4, 4, text("Strange ocean, stranger book."), 4},
		{3, 5, 5, text("The Zone stays with you."), 5},
		{2, 5, 5, nil, 8},
	}

	for _, spec := range specs {
		row, err := repo.Create(bookIDs[spec.book], users[spec.user].ID, spec.rating, spec.text)
		if err != nil {
			log.Fatalf("Failed to create review: %v", err)
		}
		// Spread review dates over the past days for the activity report.
		when := time.Now().AddDate(0, 0, -spec.daysAgo)
		if err := db.DB.Model(&entities.Review{}).
			Where("review_id = ?", row.ReviewID).
			Update("review_date", when).Error; err != nil {
			log.Fatalf("Failed to backdate review: %v", err)
		}
	}
	log.Printf("Created %d reviews", len(specs))
}

func createReadingLists(db *database.Database, users []entities.User, bookIDs []uint) {
	repo := userbooks.NewRepository(db.DB)

	specs := []struct {
		user   int
		book   int
		status entities.ReadingStatus
	}{
		{1, 0, entities.StatusFinished},
		{1, 1, entities.StatusFinished},
		{1, 4, entities.StatusReading},
		{1, 5, entities.StatusWant},
		{2, 0, entities.StatusFinished},
		{2, 3, entities.StatusReading},
		{3, 2, entities.StatusWant},
	}

	for _, spec := range specs {
		if err := repo.Upsert(users[spec.user].ID, bookIDs[spec.book], spec.status); err != nil {
			log.Fatalf("Failed to create reading-list entry: %v", err)
		}
	}
	log.Printf("Created %d reading-list entries", len(specs))
}

func createBookstores(db *database.Database) {
	stores := []entities.Bookstore{
		{Name: "City Lights Books", Address: "261 Columbus Ave, San Francisco", Latitude: 37.7976, Longitude: -122.4065, Phone: "+1 415-362-8193", Website: "https://citylights.com"},
		{Name: "Shakespeare and Company", Address: "37 Rue de la Bucherie, Paris", Latitude: 48.8526, Longitude: 2.3471, Website: "https://shakespeareandcompany.com"},
		{Name: "Powell's Books", Address: "1005 W Burnside St, Portland", Latitude: 45.5231, Longitude: -122.6812, Phone: "+1 800-878-7323", Website: "https://powells.com"},
	}

	for _, store := range stores {
		if err := db.DB.Create(&store).Error; err != nil {
			log.Fatalf("Failed to create bookstore %s: %v", store.Name, err)
		}
	}
	log.Printf("Created %d bookstores", len(stores))
}
