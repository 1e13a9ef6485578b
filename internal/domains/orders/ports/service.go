package ports

import (
	"context"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/application/types"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
)

// Service exposes the order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error)
	AdvanceOrderStatus(ctx context.Context, orderID int64, next string) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListStoreOrders(ctx context.Context, storeID int64) ([]*domain.Order, error)
}
