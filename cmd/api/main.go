package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/shopgrid/marketplace-api/internal/app/api"
)

func main() {
	// Missing .env is fine; production configures through real env vars.
	_ = godotenv.Load()

	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("marketplace API failed: %v", err)
	}
}
