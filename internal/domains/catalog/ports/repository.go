package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopgrid/marketplace-api/internal/domains/catalog/domain"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrVariationNotFound = errors.New("product variation not found")
	// ErrInsufficientStock signals an atomic deduct found less stock than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError reports the shortfall of a failed deduct. It unwraps
// to ErrInsufficientStock.
type InsufficientStockError struct {
	VariationID int64
	Available   int32
	Requested   int32
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for variation %d: available %d, requested %d",
		e.VariationID, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Repository persists products and variations and owns the stock counter.
// DeductStock and ReturnStock are the only order-driven mutation paths for
// stock; both must be atomic at the storage layer (the availability check and
// the write are one conditional operation, never a read followed by a write).
type Repository interface {
	SaveProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	ListStoreProducts(ctx context.Context, storeID int64) ([]*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) error

	SaveVariation(ctx context.Context, variation *domain.Variation) (*domain.Variation, error)
	GetVariation(ctx context.Context, id int64) (*domain.Variation, error)
	ListProductVariations(ctx context.Context, productID int64) ([]*domain.Variation, error)
	// SetStock writes an absolute stock level (merchant restock).
	SetStock(ctx context.Context, id int64, stock int32) (*domain.Variation, error)
	// DeductStock atomically removes qty, failing with *InsufficientStockError
	// when availability is below qty.
	DeductStock(ctx context.Context, id int64, qty int32) error
	// ReturnStock atomically puts qty back.
	ReturnStock(ctx context.Context, id int64, qty int32) error
}
