package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	PORT       string
	JWT_SECRET string

	DB_TYPE         string
	DB_URL          string
	DB_AUTO_MIGRATE bool

	CORS_ORIGIN string

	UPLOAD_DIR    string
	MAX_UPLOAD_MB int

	// listing / form sizing
	PAGE_SIZE         int
	PHOTO_EXTRA_SLOTS int

	GOOGLE_CLIENT_ID         string
	GOOGLE_CLIENT_SECRET     string
	GOOGLE_REDIRECT_URL      string
	GOOGLE_FRONTEND_REDIRECT string
)

func init() {
	// usable defaults for packages exercised without LoadEnv (tests, cmd/migrate)
	PAGE_SIZE = 3
	PHOTO_EXTRA_SLOTS = 3
	MAX_UPLOAD_MB = 10
	UPLOAD_DIR = "uploads"
}

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	JWT_SECRET = mustEnv("JWT_SECRET")

	DB_TYPE = strings.ToLower(getEnv("DB_TYPE", "postgres"))
	DB_URL = mustEnv("DB_URL")
	DB_AUTO_MIGRATE = getEnvBool("DB_AUTO_MIGRATE", true)

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:5173")

	UPLOAD_DIR = getEnv("UPLOAD_DIR", "uploads")
	MAX_UPLOAD_MB = getEnvInt("MAX_UPLOAD_MB", 10)

	PAGE_SIZE = getEnvInt("PAGE_SIZE", 3)
	PHOTO_EXTRA_SLOTS = getEnvInt("PHOTO_EXTRA_SLOTS", 3)

	// Google sign-in is optional; routes stay disabled without a client id
	GOOGLE_CLIENT_ID = getEnv("GOOGLE_CLIENT_ID", "")
	GOOGLE_CLIENT_SECRET = getEnv("GOOGLE_CLIENT_SECRET", "")
	GOOGLE_REDIRECT_URL = getEnv("GOOGLE_REDIRECT_URL", "")
	GOOGLE_FRONTEND_REDIRECT = getEnv("GOOGLE_FRONTEND_REDIRECT", "")
}

func GoogleEnabled() bool {
	return GOOGLE_CLIENT_ID != "" && GOOGLE_CLIENT_SECRET != "" && GOOGLE_REDIRECT_URL != ""
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

func getEnvInt(key string, fallback int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(raw) == "" {
		return fallback
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		log.Printf("Invalid value for %s (%q), using %d", key, raw, fallback)
		return fallback
	}
	return value
}

func getEnvBool(key string, fallback bool) bool {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return value
}
