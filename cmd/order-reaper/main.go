package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	orderspostgres "github.com/shopgrid/marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	ordersdomain "github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
	platformpostgres "github.com/shopgrid/marketplace-api/internal/platform/postgres"
)

// DefaultPendingMaxAge is how long an order may sit in PENDING before the
// reaper cancels it.
const DefaultPendingMaxAge = 48 * time.Hour

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	db, cleanup := platformpostgres.ConnectOrFallback(ctx, dsn, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot reap orders")
	}

	repo := orderspostgres.NewRepository(db)
	cutoff := time.Now().Add(-pendingMaxAgeFromEnv())
	stale, err := repo.ListStalePending(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to list stale pending orders: %v", err)
	}

	canceled := 0
	for _, order := range stale {
		if _, _, err := repo.Transition(ctx, order.ID, ordersdomain.StatusCanceled); err != nil {
			logger.Warn("failed to cancel stale order",
				slog.Int64("order_id", order.ID), slog.String("error", err.Error()))
			continue
		}
		canceled++
	}
	log.Printf("order reap completed: %d of %d stale pending orders canceled", canceled, len(stale))
}

func pendingMaxAgeFromEnv() time.Duration {
	raw := strings.TrimSpace(os.Getenv("ORDER_PENDING_MAX_AGE_HOURS"))
	if raw == "" {
		return DefaultPendingMaxAge
	}
	hours, err := strconv.Atoi(raw)
	if err != nil || hours <= 0 {
		return DefaultPendingMaxAge
	}
	return time.Duration(hours) * time.Hour
}
