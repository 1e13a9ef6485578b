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

	"github.com/shopgrid/marketplace-api/internal/domains/stores/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/stores/ports"
	"github.com/shopgrid/marketplace-api/internal/platform/migrations"
)

func setupStoresPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func TestPostgresStoreRepository_SaveAndLookup(t *testing.T) {
	db, cleanup := setupStoresPostgresContainer(t)
	defer cleanup()
	repo := NewRepository(db)
	ctx := context.Background()

	store, err := domain.NewStore("Atelier Nord", "atelier-nord")
	require.NoError(t, err)
	require.NoError(t, store.UpdateContact("+4712345678", "hello@atelier.example", "Nordic linen"))

	saved, err := repo.Save(ctx, store)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)
	assert.True(t, saved.Active)

	byID, err := repo.GetByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Atelier Nord", byID.Name)
	assert.Equal(t, "hello@atelier.example", byID.Email)

	bySlug, err := repo.GetBySlug(ctx, "atelier-nord")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, bySlug.ID)

	_, err = repo.GetBySlug(ctx, "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresStoreRepository_SlugUniqueness(t *testing.T) {
	db, cleanup := setupStoresPostgresContainer(t)
	defer cleanup()
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewStore("Atelier Nord", "atelier-nord")
	require.NoError(t, err)
	_, err = repo.Save(ctx, first)
	require.NoError(t, err)

	duplicate, err := domain.NewStore("Copycat", "atelier-nord")
	require.NoError(t, err)
	_, err = repo.Save(ctx, duplicate)
	require.ErrorIs(t, err, ports.ErrSlugTaken)
}

func TestPostgresStoreRepository_UpdateAndList(t *testing.T) {
	db, cleanup := setupStoresPostgresContainer(t)
	defer cleanup()
	repo := NewRepository(db)
	ctx := context.Background()

	first, err := domain.NewStore("Atelier Nord", "atelier-nord")
	require.NoError(t, err)
	first, err = repo.Save(ctx, first)
	require.NoError(t, err)

	second, err := domain.NewStore("Fjord Goods", "fjord-goods")
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)

	first.Deactivate()
	require.NoError(t, first.Rename("Atelier Nord & Co"))
	updated, err := repo.Save(ctx, first)
	require.NoError(t, err)
	assert.False(t, updated.Active)
	assert.Equal(t, "Atelier Nord & Co", updated.Name)

	stores, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 2)
}
