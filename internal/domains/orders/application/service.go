package application

import (
	"context"
	"errors"
	"strings"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/application/types"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
)

// Service orchestrates order placement and fulfillment. The repository owns
// the transactional boundary; this layer validates input, snapshots prices,
// and fans out events after a successful commit.
type Service struct {
	repo     ports.Repository
	ledger   ports.StockLedger
	keys     ports.IdempotencyStore
	notifier ports.Notifier
}

// NewService wires the order service with its collaborators. A nil keys store
// disables idempotent replay; a nil notifier discards events.
func NewService(repo ports.Repository, ledger ports.StockLedger, keys ports.IdempotencyStore, notifier ports.Notifier) *Service {
	if notifier == nil {
		notifier = ports.NoopNotifier
	}
	return &Service{repo: repo, ledger: ledger, keys: keys, notifier: notifier}
}

// PlaceOrder validates the cart, snapshots unit prices from the catalog, and
// persists the order, its items, and the per-line stock deductions as one
// atomic unit. Either everything commits or nothing does: a missing variation
// or an insufficient line aborts the whole order.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	if err := validatePlacement(input); err != nil {
		return nil, mapError(err)
	}

	key := strings.TrimSpace(input.IdempotencyKey)
	var fingerprint string
	if key != "" && s.keys != nil {
		hash, err := FingerprintPlaceOrder(input)
		if err != nil {
			return nil, err
		}
		fingerprint = hash
		stored, err := s.keys.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			if stored.RequestHash != fingerprint {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.repo.GetByID(ctx, stored.OrderID)
		}
	}

	items := make([]domain.Item, 0, len(input.Lines))
	for _, line := range input.Lines {
		variation, err := s.ledger.VariationByID(ctx, line.VariationID)
		if err != nil {
			return nil, err
		}
		// Advisory check for a fast, detailed rejection. The authoritative
		// check is the conditional stock update inside repo.Create.
		if variation.Stock < line.Quantity {
			return nil, &ports.InsufficientStockError{
				VariationID: variation.ID,
				Available:   variation.Stock,
				Requested:   line.Quantity,
			}
		}
		items = append(items, domain.Item{
			VariationID: line.VariationID,
			Quantity:    line.Quantity,
			UnitPrice:   variation.EffectivePrice(),
		})
	}

	order, err := domain.NewOrder(input.StoreID, input.CustomerName, input.CustomerPhone, input.CustomerEmail, input.Notes, items)
	if err != nil {
		return nil, mapError(err)
	}

	saved, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if key != "" && s.keys != nil {
		record := ports.IdempotencyRecord{Key: key, RequestHash: fingerprint, OrderID: saved.ID}
		if stored, err := s.keys.Save(ctx, record); err != nil {
			if stored != nil && errors.Is(err, ports.ErrIdempotencyConflict) {
				// A concurrent retry beat us to the key; the stored order wins.
				return s.repo.GetByID(ctx, stored.OrderID)
			}
			return nil, err
		}
	}

	// Fire-and-forget: notifier failures never roll back the placement.
	_ = s.notifier.OrderPlaced(ctx, saved)
	return saved, nil
}

// AdvanceOrderStatus moves an order through the fulfillment pipeline. The
// stock effect of the move is resolved from the transition table against the
// currently stored status, and applied together with the status write.
func (s *Service) AdvanceOrderStatus(ctx context.Context, orderID int64, next string) (*domain.Order, error) {
	status, err := domain.ParseStatus(next)
	if err != nil {
		return nil, err
	}
	updated, old, err := s.repo.Transition(ctx, orderID, status)
	if err != nil {
		return nil, err
	}
	_ = s.notifier.OrderStatusChanged(ctx, updated, old)
	return updated, nil
}

// GetOrder loads one order with its items.
func (s *Service) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListStoreOrders returns the orders of one store, newest first.
func (s *Service) ListStoreOrders(ctx context.Context, storeID int64) ([]*domain.Order, error) {
	return s.repo.ListByStore(ctx, storeID)
}

func validatePlacement(input types.PlaceOrderInput) error {
	if input.StoreID <= 0 {
		return domain.ErrInvalidStoreRef
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		return domain.ErrEmptyCustomerName
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return domain.ErrEmptyCustomerPhone
	}
	if len(input.Lines) == 0 {
		return domain.ErrEmptyItems
	}
	for _, line := range input.Lines {
		if line.VariationID <= 0 {
			return domain.ErrInvalidVariationRef
		}
		if line.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}

var _ ports.Service = (*Service)(nil)
