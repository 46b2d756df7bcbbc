package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT           string
	DB_URL         string
	SESSION_SECRET string

	// APP_PASSWORD may be the plain shared password or a bcrypt hash
	// (recognized by the "$2" prefix). Empty disables the login gate,
	// which is only meant for local development.
	APP_PASSWORD string

	CORS_ORIGIN string

	ARXIV_BASE_URL       string
	OPENLIBRARY_BASE_URL string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	SESSION_SECRET = mustEnv("SESSION_SECRET")
	APP_PASSWORD = getEnv("APP_PASSWORD", "")
	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	ARXIV_BASE_URL = getEnv("ARXIV_BASE_URL", "https://export.arxiv.org")
	OPENLIBRARY_BASE_URL = getEnv("OPENLIBRARY_BASE_URL", "https://openlibrary.org")

	if APP_PASSWORD == "" {
		log.Println("APP_PASSWORD not set - login gate disabled (local dev mode)")
	}
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
