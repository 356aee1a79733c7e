package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/repository"
	"photoshare/internal/sweeper"
)

// One-shot variant of the in-process sweep, for running from cron when the
// API server is deployed without a long-lived worker.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	tokenRepo := repository.NewTokenRepository(db)
	sweeper.New(tokenRepo, cfg.SweepInterval, cfg.BlacklistRetention).Sweep(context.Background())
}
