package ports

import (
	"context"

	"github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListStoreProducts(ctx context.Context, storeID int64) ([]*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	ArchiveProduct(ctx context.Context, id int64) (*domain.Product, error)

	AddVariation(ctx context.Context, variation *domain.Variation) (*domain.Variation, error)
	GetVariation(ctx context.Context, id int64) (*domain.Variation, error)
	ListProductVariations(ctx context.Context, productID int64) ([]*domain.Variation, error)
	UpdateVariation(ctx context.Context, variation *domain.Variation) (*domain.Variation, error)
	RestockVariation(ctx context.Context, id int64, stock int32) (*domain.Variation, error)
}
