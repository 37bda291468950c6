package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds every environment-driven setting the service needs.
type Config struct {
	Port                string
	MongoURI            string
	DatabaseName        string
	RedisAddr           string
	StripeSecretKey     string
	StripeWebhookSecret string
	FrontendURL         string
}

// LoadEnv loads environment variables from the .env file if one is present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on process environment")
	}
}

// Load reads the service configuration from the environment. Settings
// without a sensible default are required and abort startup when missing.
func Load() Config {
	cfg := Config{
		Port:                getenv("PORT", "8000"),
		MongoURI:            os.Getenv("MONGO_DB_URI"),
		DatabaseName:        getenv("DB_NAME", "QuickEats"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		FrontendURL:         getenv("FRONTEND_URL", "http://localhost:5173"),
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONGO_DB_URI is not set in the environment variables")
	}
	if cfg.StripeSecretKey == "" {
		log.Fatal("STRIPE_SECRET_KEY is not set in the environment variables")
	}
	if cfg.StripeWebhookSecret == "" {
		log.Fatal("STRIPE_WEBHOOK_SECRET is not set in the environment variables")
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
