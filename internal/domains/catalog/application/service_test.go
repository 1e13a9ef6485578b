package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/shopgrid/marketplace-api/internal/domains/catalog/adapters/memory"
	"github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
)

func newTestService(t *testing.T) (*Service, *domain.Product) {
	t.Helper()
	svc := NewService(catalogmemory.NewRepository())
	product, err := domain.NewProduct(1, "Linen Shirt")
	require.NoError(t, err)
	product, err = svc.AddProduct(context.Background(), product)
	require.NoError(t, err)
	return svc, product
}

func TestAddProduct_StartsAsDraft(t *testing.T) {
	_, product := newTestService(t)
	require.NotZero(t, product.ID)
	require.Equal(t, domain.StatusDraft, product.Status)
}

func TestAddProduct_InvalidInput(t *testing.T) {
	svc := NewService(catalogmemory.NewRepository())

	_, err := svc.AddProduct(context.Background(), &domain.Product{StoreID: 1, Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyName)
}

func TestUpdateProduct_KeepsOwningStore(t *testing.T) {
	svc, product := newTestService(t)

	edit := &domain.Product{ID: product.ID, StoreID: 99, Name: "Linen Shirt v2", Status: domain.StatusActive}
	updated, err := svc.UpdateProduct(context.Background(), edit)
	require.NoError(t, err)
	require.Equal(t, product.StoreID, updated.StoreID)
	require.Equal(t, "Linen Shirt v2", updated.Name)
	require.Equal(t, domain.StatusActive, updated.Status)
}

func TestUpdateProduct_UnknownProduct(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdateProduct(context.Background(), &domain.Product{ID: 404, StoreID: 1, Name: "Ghost"})
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestArchiveProduct_RetiresListing(t *testing.T) {
	svc, product := newTestService(t)

	archived, err := svc.ArchiveProduct(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusArchived, archived.Status)
}

func TestAddVariation_RequiresExistingProduct(t *testing.T) {
	svc, product := newTestService(t)

	variation, err := domain.NewVariation(product.ID, "M", "white", 1500, 10)
	require.NoError(t, err)
	saved, err := svc.AddVariation(context.Background(), variation)
	require.NoError(t, err)
	require.NotZero(t, saved.ID)

	orphan, err := domain.NewVariation(404, "M", "white", 1500, 10)
	require.NoError(t, err)
	_, err = svc.AddVariation(context.Background(), orphan)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestUpdateVariation_NeverTouchesStock(t *testing.T) {
	svc, product := newTestService(t)

	variation, err := domain.NewVariation(product.ID, "M", "white", 1500, 10)
	require.NoError(t, err)
	variation, err = svc.AddVariation(context.Background(), variation)
	require.NoError(t, err)

	discount := int64(1200)
	edit := &domain.Variation{ID: variation.ID, Size: "L", Color: "white", Price: 1600, DiscountPrice: &discount, Stock: 0}
	updated, err := svc.UpdateVariation(context.Background(), edit)
	require.NoError(t, err)
	require.Equal(t, int64(1600), updated.Price)
	require.Equal(t, discount, *updated.DiscountPrice)
	// Stock edits only go through RestockVariation or the order paths.
	require.Equal(t, int32(10), updated.Stock)
}

func TestRestockVariation_WritesAbsoluteLevel(t *testing.T) {
	svc, product := newTestService(t)

	variation, err := domain.NewVariation(product.ID, "M", "white", 1500, 10)
	require.NoError(t, err)
	variation, err = svc.AddVariation(context.Background(), variation)
	require.NoError(t, err)

	updated, err := svc.RestockVariation(context.Background(), variation.ID, 25)
	require.NoError(t, err)
	require.Equal(t, int32(25), updated.Stock)

	_, err = svc.RestockVariation(context.Background(), variation.ID, -1)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativeStock)
}
