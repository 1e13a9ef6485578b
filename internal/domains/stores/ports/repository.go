package ports

import (
	"context"
	"errors"

	"github.com/shopgrid/marketplace-api/internal/domains/stores/domain"
)

var (
	ErrNotFound  = errors.New("store not found")
	ErrSlugTaken = errors.New("store slug already in use")
)

// Repository persists merchant stores.
type Repository interface {
	Save(ctx context.Context, store *domain.Store) (*domain.Store, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	List(ctx context.Context) ([]*domain.Store, error)
}
