package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	catalogmemory "github.com/shopgrid/marketplace-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/shopgrid/marketplace-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/shopgrid/marketplace-api/internal/domains/catalog/application"
	catalogports "github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
	ordersbridge "github.com/shopgrid/marketplace-api/internal/domains/orders/adapters/catalog"
	ordersmemory "github.com/shopgrid/marketplace-api/internal/domains/orders/adapters/memory"
	ordersnotify "github.com/shopgrid/marketplace-api/internal/domains/orders/adapters/notify"
	ordersobs "github.com/shopgrid/marketplace-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/shopgrid/marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/shopgrid/marketplace-api/internal/domains/orders/application"
	ordersports "github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
	storesmemory "github.com/shopgrid/marketplace-api/internal/domains/stores/adapters/memory"
	storespostgres "github.com/shopgrid/marketplace-api/internal/domains/stores/adapters/persistence/postgres"
	storesapp "github.com/shopgrid/marketplace-api/internal/domains/stores/application"
	storesports "github.com/shopgrid/marketplace-api/internal/domains/stores/ports"
	platformmigrations "github.com/shopgrid/marketplace-api/internal/platform/migrations"
	platformobservability "github.com/shopgrid/marketplace-api/internal/platform/observability"
	platformpostgres "github.com/shopgrid/marketplace-api/internal/platform/postgres"
)

// Run boots the marketplace HTTP API with observability, repositories, and
// the order event notifier wired.
func Run(ctx context.Context) error {
	const serviceName = "marketplace-api"
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, logger)
	defer cleanupDB()
	if db != nil {
		if err := platformmigrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	storeRepo, catalogRepo, orderRepo, keys := buildRepositories(db)

	notifier, closeNotifier := buildNotifier(cfg, logger)
	defer func() {
		if err := closeNotifier(); err != nil {
			logger.Warn("failed to close order notifier", slog.String("error", err.Error()))
		}
	}()

	storeService := storesapp.NewService(storeRepo)
	catalogService := catalogapp.NewService(catalogRepo)
	ledger := ordersbridge.NewLedger(catalogRepo)
	orderService := ordersobs.New(
		ordersapp.NewService(orderRepo, ledger, keys, notifier),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	router := NewRouter(serviceName,
		NewOrderAPI(orderService),
		NewCatalogAPI(catalogService),
		NewStoreAPI(storeService),
	)
	addr := ":" + cfg.Port
	logger.Info("marketplace API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("marketplace API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildRepositories selects Postgres-backed adapters when a database is
// available and in-memory fallbacks otherwise. The in-memory order repository
// adjusts stock through the catalog ledger so both wirings keep the
// no-oversell behavior.
func buildRepositories(db *gorm.DB) (storesports.Repository, catalogports.Repository, ordersports.Repository, ordersports.IdempotencyStore) {
	if db != nil {
		return storespostgres.NewRepository(db),
			catalogpostgres.NewRepository(db),
			orderspostgres.NewRepository(db),
			orderspostgres.NewIdempotencyStore(db)
	}
	catalogRepo := catalogmemory.NewRepository()
	return storesmemory.NewRepository(),
		catalogRepo,
		ordersmemory.NewRepository(ordersbridge.NewLedger(catalogRepo)),
		ordersmemory.NewIdempotencyStore()
}

func buildNotifier(cfg Config, logger *slog.Logger) (ordersports.Notifier, func() error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS not set, order events stay in-process")
		return ordersports.NoopNotifier, func() error { return nil }
	}
	notifier := ordersnotify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaOrderTopic, logger)
	logger.Info("order events publishing to kafka",
		slog.Any("brokers", cfg.KafkaBrokers), slog.String("topic", cfg.KafkaOrderTopic))
	return notifier, notifier.Close
}
