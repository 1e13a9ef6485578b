//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
	"github.com/shopgrid/marketplace-api/internal/platform/migrations"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func seedProduct(t *testing.T, repo *Repository) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(1, "Linen Shirt")
	require.NoError(t, err)
	product.ReplaceImages([]string{"https://img.example/front.jpg", "https://img.example/back.jpg"})
	product, err = repo.SaveProduct(context.Background(), product)
	require.NoError(t, err)
	return product
}

func TestPostgresCatalogRepository_ProductRoundTrip(t *testing.T) {
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo)
	require.NotZero(t, product.ID)

	fetched, err := repo.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt", fetched.Name)
	assert.Equal(t, []string{"https://img.example/front.jpg", "https://img.example/back.jpg"}, fetched.ImageURLs)
	assert.Equal(t, domain.StatusDraft, fetched.Status)

	fetched.Status = domain.StatusActive
	fetched.Description = "Breathable summer shirt"
	updated, err := repo.SaveProduct(ctx, fetched)
	require.NoError(t, err)
	assert.Equal(t, product.ID, updated.ID)
	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Equal(t, "Breathable summer shirt", updated.Description)
}

func TestPostgresCatalogRepository_GetProductNotFound(t *testing.T) {
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()
	repo := NewRepository(db)

	_, err := repo.GetProduct(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestPostgresCatalogRepository_DeleteProductRemovesVariations(t *testing.T) {
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo)
	variation, err := domain.NewVariation(product.ID, "M", "white", 1500, 10)
	require.NoError(t, err)
	variation, err = repo.SaveVariation(ctx, variation)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteProduct(ctx, product.ID))

	_, err = repo.GetProduct(ctx, product.ID)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
	_, err = repo.GetVariation(ctx, variation.ID)
	require.ErrorIs(t, err, ports.ErrVariationNotFound)
}

func TestPostgresCatalogRepository_StockOperations(t *testing.T) {
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()
	repo := NewRepository(db)
	ctx := context.Background()

	product := seedProduct(t, repo)
	variation, err := domain.NewVariation(product.ID, "M", "white", 1500, 5)
	require.NoError(t, err)
	variation, err = repo.SaveVariation(ctx, variation)
	require.NoError(t, err)

	require.NoError(t, repo.DeductStock(ctx, variation.ID, 5))
	fetched, err := repo.GetVariation(ctx, variation.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(0), fetched.Stock)

	err = repo.DeductStock(ctx, variation.ID, 1)
	var insufficient *ports.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, int32(0), insufficient.Available)
	assert.Equal(t, int32(1), insufficient.Requested)

	require.NoError(t, repo.ReturnStock(ctx, variation.ID, 3))
	restocked, err := repo.SetStock(ctx, variation.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, int32(20), restocked.Stock)

	require.ErrorIs(t, repo.DeductStock(ctx, 404, 1), ports.ErrVariationNotFound)
}
