package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter for development and
// tests. Stock lives behind the ledger port; multi-line operations that fail
// part-way compensate the lines already applied, so no committed state ever
// leaks from an aborted placement or transition.
type Repository struct {
	mu         sync.Mutex
	orders     map[int64]*domain.Order
	nextID     int64
	nextItemID int64
	ledger     ports.StockLedger
	now        func() time.Time
}

func NewRepository(ledger ports.StockLedger) *Repository {
	return &Repository{
		orders: map[int64]*domain.Order{},
		ledger: ledger,
		now:    time.Now,
	}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := cloneOrder(order)
	if err := clone.Validate(); err != nil {
		return nil, err
	}

	deducted := make([]domain.Item, 0, len(clone.Items))
	for _, item := range clone.Items {
		if err := r.ledger.DeductStock(ctx, item.VariationID, item.Quantity); err != nil {
			r.compensate(ctx, deducted)
			return nil, err
		}
		deducted = append(deducted, item)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone.ID = r.nextID
	now := r.now()
	clone.CreatedAt = now
	clone.UpdatedAt = now
	for i := range clone.Items {
		r.nextItemID++
		clone.Items[i].ID = r.nextItemID
		clone.Items[i].OrderID = clone.ID
	}
	r.orders[clone.ID] = clone
	return cloneOrder(clone), nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return cloneOrder(order), nil
}

func (r *Repository) ListByStore(_ context.Context, storeID int64) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.StoreID == storeID {
			list = append(list, cloneOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r *Repository) Transition(ctx context.Context, id int64, next domain.Status) (*domain.Order, domain.Status, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, "", ports.ErrNotFound
	}
	old := order.Status
	action, err := domain.StockActionFor(old, next)
	if err != nil {
		return nil, "", err
	}

	switch action {
	case domain.ActionDeduct:
		deducted := make([]domain.Item, 0, len(order.Items))
		for _, item := range order.Items {
			if err := r.ledger.DeductStock(ctx, item.VariationID, item.Quantity); err != nil {
				r.compensate(ctx, deducted)
				return nil, "", err
			}
			deducted = append(deducted, item)
		}
	case domain.ActionReturn:
		for _, item := range order.Items {
			if err := r.ledger.ReturnStock(ctx, item.VariationID, item.Quantity); err != nil {
				return nil, "", err
			}
		}
	}

	order.Status = next
	order.UpdatedAt = r.now()
	return cloneOrder(order), old, nil
}

func (r *Repository) ListStalePending(_ context.Context, before time.Time) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.Status == domain.StatusPending && order.CreatedAt.Before(before) {
			list = append(list, cloneOrder(order))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *Repository) compensate(ctx context.Context, items []domain.Item) {
	for _, item := range items {
		_ = r.ledger.ReturnStock(ctx, item.VariationID, item.Quantity)
	}
}

func cloneOrder(o *domain.Order) *domain.Order {
	clone := *o
	clone.Items = append([]domain.Item{}, o.Items...)
	return &clone
}
