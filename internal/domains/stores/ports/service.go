package ports

import (
	"context"

	"github.com/shopgrid/marketplace-api/internal/domains/stores/domain"
)

// Service exposes store use cases to adapters.
type Service interface {
	CreateStore(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetStore(ctx context.Context, id int64) (*domain.Store, error)
	GetStoreBySlug(ctx context.Context, slug string) (*domain.Store, error)
	UpdateStore(ctx context.Context, store *domain.Store) (*domain.Store, error)
	DeactivateStore(ctx context.Context, id int64) (*domain.Store, error)
	ListStores(ctx context.Context) ([]*domain.Store, error)
}
