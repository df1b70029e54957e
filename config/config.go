package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PORT           string
	DB_URL         string
	WEBHOOK_SECRET string
	CLERK_ISSUER   string

	APP_URL string

	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	WEBHOOK_SECRET = mustEnv("WEBHOOK_SECRET")
	CLERK_ISSUER = mustEnv("CLERK_ISSUER")

	APP_URL = getEnv("APP_URL", "http://localhost:3000")

	// Stripe keys are validated at the billing handlers so the Clerk
	// webhook receiver can run without billing configured.
	STRIPE_SECRET_KEY = getEnv("STRIPE_SECRET_KEY", "")
	STRIPE_WEBHOOK_SECRET = getEnv("STRIPE_WEBHOOK_SECRET", "")
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
