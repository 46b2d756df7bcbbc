package database

import (
	"fmt"
	"log"

	"paper-tracker/config"
	"paper-tracker/internal/domain/authors"
	"paper-tracker/internal/domain/categories"
	"paper-tracker/internal/domain/effort"
	"paper-tracker/internal/domain/papers"
	"paper-tracker/internal/domain/textbooks"
	"paper-tracker/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := config.DB_URL
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	// TranslateError turns driver unique-violations into gorm.ErrDuplicatedKey,
	// which the author resolver and category handlers rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

// Migrate creates/updates the schema for all domain models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&categories.Category{},
		&authors.Author{},
		&papers.Paper{},
		&papers.PaperAuthor{},
		&papers.DiscoverySource{},
		&textbooks.Textbook{},
		&effort.Log{},
	)
}
