package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lareinaLY/baby-meal-recommendation/models"
)

var DB *gorm.DB

// AppConfig carries all runtime settings. It is built once at startup
// and passed explicitly to the pieces that need it; nothing besides
// the DB handle lives in package state.
type AppConfig struct {
	OpenAIKey string
	LLMModel  string

	// Recommendation request bounds
	DefaultRecommendationCount int
	MaxRecommendationCount     int

	// Days a recipe stays excluded after being recommended
	ExcludeRecentDays int
}

// Load reads .env (if present) and assembles the AppConfig.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := AppConfig{
		OpenAIKey:                  os.Getenv("OPENAI_API_KEY"),
		LLMModel:                   envOr("LLM_MODEL", "gpt-4o-mini"),
		DefaultRecommendationCount: envIntOr("DEFAULT_RECOMMENDATION_COUNT", 5),
		MaxRecommendationCount:     envIntOr("MAX_RECOMMENDATION_COUNT", 20),
		ExcludeRecentDays:          envIntOr("EXCLUDE_RECENT_DAYS", 7),
	}
	return cfg
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Baby{},
		&models.Recipe{},
		&models.Feedback{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
