package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"contactagenda/internal/database"
	"contactagenda/internal/repository"
)

const revokedRetention = 30 * 24 * time.Hour

// Purges refresh tokens that can never be redeemed again: expired ones and
// revoked ones past the retention window. Meant for a cron job.
func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	tokenRepo := repository.NewRefreshTokenRepository(db)
	deleted, err := tokenRepo.DeleteExpired(context.Background(), revokedRetention)
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d", deleted)
}
