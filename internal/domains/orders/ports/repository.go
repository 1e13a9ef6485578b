package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
)

var (
	// ErrNotFound signals a lookup against an unknown order.
	ErrNotFound = errors.New("order not found")
	// ErrStorage wraps infrastructure failures so callers can tell a degraded
	// backend apart from a business-rule rejection.
	ErrStorage = errors.New("order storage unavailable")
)

// Repository persists orders and owns the transactional boundary of the two
// core write paths. Create and Transition must be all-or-nothing: either the
// order/status write and every per-line stock adjustment commit together, or
// none of them do.
type Repository interface {
	// Create persists the order with its items and deducts stock for every
	// line. Fails with ErrVariationNotFound or *InsufficientStockError without
	// persisting anything.
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// GetByID loads an order with its items.
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// ListByStore returns all orders of a store, newest first.
	ListByStore(ctx context.Context, storeID int64) ([]*domain.Order, error)
	// Transition moves the order to next, applying the stock action resolved
	// from the currently stored status, and reports the status the order held
	// before the move. A deduct that would drive any line's variation stock
	// negative aborts the whole transition with *InsufficientStockError and
	// leaves the status unchanged.
	Transition(ctx context.Context, id int64, next domain.Status) (*domain.Order, domain.Status, error)
	// ListStalePending returns PENDING orders created before the cutoff.
	ListStalePending(ctx context.Context, before time.Time) ([]*domain.Order, error)
}
