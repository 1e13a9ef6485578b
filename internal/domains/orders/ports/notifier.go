package ports

import (
	"context"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
)

// Notifier fans out order events after a successful commit. Dispatch is
// fire-and-forget: a failing notifier must never roll back the operation that
// produced the event, so callers log and move on.
type Notifier interface {
	OrderPlaced(ctx context.Context, order *domain.Order) error
	OrderStatusChanged(ctx context.Context, order *domain.Order, old domain.Status) error
}

// NoopNotifier discards every event.
var NoopNotifier Notifier = noopNotifier{}

type noopNotifier struct{}

func (noopNotifier) OrderPlaced(context.Context, *domain.Order) error { return nil }

func (noopNotifier) OrderStatusChanged(context.Context, *domain.Order, domain.Status) error {
	return nil
}
