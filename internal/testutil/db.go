// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"testing"
	"time"

	"artifolio/database"
	"artifolio/internal/domain/challenges"
	"artifolio/internal/domain/users"
	"artifolio/internal/domain/works"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OpenDB returns a migrated in-memory SQLite database with foreign keys on.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, email string) users.User {
	t.Helper()
	u := users.User{Name: email, Email: email, AuthProvider: "local"}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return u
}

// ArtworkOpt tweaks an artwork fixture before insert.
type ArtworkOpt func(*works.Artwork)

func WithTechnique(tech works.Technique) ArtworkOpt {
	return func(a *works.Artwork) { a.Technique = tech }
}

func WithStartDate(y int, m int, d int) ArtworkOpt {
	return func(a *works.Artwork) { a.StartDate = Date(y, m, d) }
}

func CreateArtwork(t testing.TB, db *gorm.DB, ownerID uint, title string, opts ...ArtworkOpt) works.Artwork {
	t.Helper()
	a := works.Artwork{
		UserID:     ownerID,
		Title:      title,
		FinalImage: "artworks/final/" + title + ".png",
		Technique:  works.DefaultTechnique,
	}
	for _, opt := range opts {
		opt(&a)
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("create artwork %q: %v", title, err)
	}
	return a
}

func CreatePhoto(t testing.TB, db *gorm.DB, artworkID uint, order int) works.ProgressPhoto {
	t.Helper()
	p := works.ProgressPhoto{ArtworkID: artworkID, Image: "artworks/progress/p.png", Order: order}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("create photo: %v", err)
	}
	return p
}

func CreateComment(t testing.TB, db *gorm.DB, artworkID, authorID uint, text string) works.PrivateComment {
	t.Helper()
	c := works.PrivateComment{ArtworkID: artworkID, UserID: authorID, Text: text}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create comment: %v", err)
	}
	return c
}

func CreateChallenge(t testing.TB, db *gorm.DB, ownerID uint, text string) challenges.Challenge {
	t.Helper()
	c := challenges.Challenge{UserID: ownerID, Text: text}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create challenge: %v", err)
	}
	return c
}

func Date(y, m, d int) *datatypes.Date {
	v := datatypes.Date(time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC))
	return &v
}
