//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/shopgrid/marketplace-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogdomain "github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
	"github.com/shopgrid/marketplace-api/internal/platform/migrations"
)

func setupOrdersPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("marketplace_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func seedVariation(t *testing.T, db *gorm.DB, stock int32) int64 {
	t.Helper()
	ctx := context.Background()
	catalogRepo := catalogpostgres.NewRepository(db)

	product, err := catalogdomain.NewProduct(1, "Linen Shirt")
	require.NoError(t, err)
	product, err = catalogRepo.SaveProduct(ctx, product)
	require.NoError(t, err)

	variation, err := catalogdomain.NewVariation(product.ID, "M", "white", 1000, stock)
	require.NoError(t, err)
	variation, err = catalogRepo.SaveVariation(ctx, variation)
	require.NoError(t, err)
	return variation.ID
}

func variationStock(t *testing.T, db *gorm.DB, id int64) int32 {
	t.Helper()
	variation, err := catalogpostgres.NewRepository(db).GetVariation(context.Background(), id)
	require.NoError(t, err)
	return variation.Stock
}

func testOrder(t *testing.T, items ...domain.Item) *domain.Order {
	t.Helper()
	order, err := domain.NewOrder(1, "Grace Hopper", "+1 555 0100", "", "", items)
	require.NoError(t, err)
	return order
}

func TestRepository_CreateDeductsStockInOneTransaction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	variationID := seedVariation(t, db, 5)
	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, testOrder(t,
		domain.Item{VariationID: variationID, Quantity: 2, UnitPrice: 1000},
	))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, domain.StatusPending, saved.Status)
	assert.Equal(t, int64(2000), saved.Total)
	assert.Equal(t, int32(3), variationStock(t, db, variationID))

	fetched, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, saved.ID, fetched.Items[0].OrderID)
}

func TestRepository_CreateRollsBackOnInsufficientLine(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	okID := seedVariation(t, db, 5)
	shortID := seedVariation(t, db, 1)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, testOrder(t,
		domain.Item{VariationID: okID, Quantity: 2, UnitPrice: 1000},
		domain.Item{VariationID: shortID, Quantity: 3, UnitPrice: 500},
	))
	var insufficient *ports.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, shortID, insufficient.VariationID)
	assert.Equal(t, int32(1), insufficient.Available)
	assert.Equal(t, int32(3), insufficient.Requested)

	// The whole transaction rolled back: no order rows, no stock movement.
	assert.Equal(t, int32(5), variationStock(t, db, okID))
	assert.Equal(t, int32(1), variationStock(t, db, shortID))
	orders, err := repo.ListByStore(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestRepository_TransitionAppliesStockAction(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	variationID := seedVariation(t, db, 10)
	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, testOrder(t,
		domain.Item{VariationID: variationID, Quantity: 3, UnitPrice: 1000},
	))
	require.NoError(t, err)
	require.Equal(t, int32(7), variationStock(t, db, variationID))

	updated, old, err := repo.Transition(ctx, saved.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, old)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	assert.Equal(t, int32(4), variationStock(t, db, variationID))

	// Pipeline moves after confirmation leave stock untouched.
	_, _, err = repo.Transition(ctx, saved.ID, domain.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, int32(4), variationStock(t, db, variationID))

	// Canceling returns the line quantities.
	_, old, err = repo.Transition(ctx, saved.ID, domain.StatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPreparing, old)
	assert.Equal(t, int32(7), variationStock(t, db, variationID))
}

func TestRepository_TransitionInsufficientKeepsStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	variationID := seedVariation(t, db, 4)
	repo := NewRepository(db)
	ctx := context.Background()

	saved, err := repo.Create(ctx, testOrder(t,
		domain.Item{VariationID: variationID, Quantity: 3, UnitPrice: 1000},
	))
	require.NoError(t, err)
	require.Equal(t, int32(1), variationStock(t, db, variationID))

	_, _, err = repo.Transition(ctx, saved.ID, domain.StatusConfirmed)
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	reloaded, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, reloaded.Status)
	assert.Equal(t, int32(1), variationStock(t, db, variationID))
}

func TestRepository_ConcurrentCreatesNeverOversell(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	const stock = 10
	const attempts = 25
	variationID := seedVariation(t, db, stock)
	repo := NewRepository(db)

	orders := make([]*domain.Order, attempts)
	for i := range orders {
		orders[i] = testOrder(t, domain.Item{VariationID: variationID, Quantity: 1, UnitPrice: 500})
	}

	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(order *domain.Order) {
			defer wg.Done()
			_, err := repo.Create(context.Background(), order)
			results <- err
		}(orders[i])
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			require.ErrorIs(t, err, ports.ErrInsufficientStock)
		}
	}
	assert.Equal(t, stock, succeeded)
	assert.Equal(t, int32(0), variationStock(t, db, variationID))
}

func TestRepository_ListStalePending(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupOrdersPostgresContainer(t)
	defer cleanup()

	variationID := seedVariation(t, db, 10)
	repo := NewRepository(db)
	ctx := context.Background()

	stale, err := repo.Create(ctx, testOrder(t,
		domain.Item{VariationID: variationID, Quantity: 1, UnitPrice: 1000},
	))
	require.NoError(t, err)
	// Age the first order past the cutoff.
	err = db.Model(&orderRecord{}).Where("id = ?", stale.ID).
		UpdateColumn("created_at", time.Now().Add(-72*time.Hour)).Error
	require.NoError(t, err)

	fresh, err := repo.Create(ctx, testOrder(t,
		domain.Item{VariationID: variationID, Quantity: 1, UnitPrice: 1000},
	))
	require.NoError(t, err)
	_, _, err = repo.Transition(ctx, fresh.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	list, err := repo.ListStalePending(ctx, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, stale.ID, list[0].ID)
}
