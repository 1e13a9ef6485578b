package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/application/types"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
)

type fakeOrderRepo struct {
	nextID int64
	orders map[int64]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*domain.Order{}}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *domain.Order) (*domain.Order, error) {
	f.nextID++
	clone := *order
	clone.ID = f.nextID
	clone.CreatedAt = time.Now()
	f.orders[clone.ID] = &clone
	copy := clone
	return &copy, nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*domain.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	copy := *order
	return &copy, nil
}

func (f *fakeOrderRepo) ListByStore(_ context.Context, storeID int64) ([]*domain.Order, error) {
	var list []*domain.Order
	for _, order := range f.orders {
		if order.StoreID == storeID {
			copy := *order
			list = append(list, &copy)
		}
	}
	return list, nil
}

func (f *fakeOrderRepo) Transition(_ context.Context, id int64, next domain.Status) (*domain.Order, domain.Status, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, "", ports.ErrNotFound
	}
	old := order.Status
	if _, err := domain.StockActionFor(old, next); err != nil {
		return nil, "", err
	}
	order.Status = next
	copy := *order
	return &copy, old, nil
}

func (f *fakeOrderRepo) ListStalePending(_ context.Context, _ time.Time) ([]*domain.Order, error) {
	return nil, nil
}

type fakeLedger struct {
	variations map[int64]*ports.VariationAvailability
}

func (f *fakeLedger) VariationByID(_ context.Context, id int64) (*ports.VariationAvailability, error) {
	variation, ok := f.variations[id]
	if !ok {
		return nil, ports.ErrVariationNotFound
	}
	copy := *variation
	return &copy, nil
}

func (f *fakeLedger) DeductStock(_ context.Context, id int64, qty int32) error {
	variation, ok := f.variations[id]
	if !ok {
		return ports.ErrVariationNotFound
	}
	if variation.Stock < qty {
		return &ports.InsufficientStockError{VariationID: id, Available: variation.Stock, Requested: qty}
	}
	variation.Stock -= qty
	return nil
}

func (f *fakeLedger) ReturnStock(_ context.Context, id int64, qty int32) error {
	variation, ok := f.variations[id]
	if !ok {
		return ports.ErrVariationNotFound
	}
	variation.Stock += qty
	return nil
}

type fakeKeyStore struct {
	records map[string]*ports.IdempotencyRecord
}

func newFakeKeyStore() *fakeKeyStore {
	return &fakeKeyStore{records: map[string]*ports.IdempotencyRecord{}}
}

func (f *fakeKeyStore) Get(_ context.Context, key string) (*ports.IdempotencyRecord, error) {
	record, ok := f.records[key]
	if !ok {
		return nil, nil
	}
	copy := *record
	return &copy, nil
}

func (f *fakeKeyStore) Save(_ context.Context, record ports.IdempotencyRecord) (*ports.IdempotencyRecord, error) {
	if stored, ok := f.records[record.Key]; ok {
		copy := *stored
		if stored.RequestHash != record.RequestHash {
			return &copy, ports.ErrIdempotencyConflict
		}
		return &copy, nil
	}
	clone := record
	f.records[record.Key] = &clone
	copy := clone
	return &copy, nil
}

type recordingNotifier struct {
	placed      []int64
	transitions []string
}

func (r *recordingNotifier) OrderPlaced(_ context.Context, order *domain.Order) error {
	r.placed = append(r.placed, order.ID)
	return nil
}

func (r *recordingNotifier) OrderStatusChanged(_ context.Context, order *domain.Order, old domain.Status) error {
	r.transitions = append(r.transitions, string(old)+"->"+string(order.Status))
	return nil
}

func discount(v int64) *int64 { return &v }

func testLedger() *fakeLedger {
	return &fakeLedger{variations: map[int64]*ports.VariationAvailability{
		1: {ID: 1, ProductID: 1, Price: 1000, Stock: 5},
		2: {ID: 2, ProductID: 1, Price: 2000, DiscountPrice: discount(1500), Stock: 3},
	}}
}

func placement(lines ...types.PlaceOrderLine) types.PlaceOrderInput {
	return types.PlaceOrderInput{
		StoreID:       1,
		CustomerName:  "Grace Hopper",
		CustomerPhone: "+1 555 0100",
		Lines:         lines,
	}
}

func TestPlaceOrder_SnapshotsEffectivePrices(t *testing.T) {
	repo := newFakeOrderRepo()
	ledger := testLedger()
	svc := NewService(repo, ledger, nil, nil)

	order, err := svc.PlaceOrder(context.Background(), placement(
		types.PlaceOrderLine{VariationID: 1, Quantity: 2},
		types.PlaceOrderLine{VariationID: 2, Quantity: 1},
	))
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, order.Status)
	require.Equal(t, int64(1000), order.Items[0].UnitPrice)
	// The discounted price wins over the regular price.
	require.Equal(t, int64(1500), order.Items[1].UnitPrice)
	require.Equal(t, int64(3500), order.Total)

	// A later price change never rewrites the placed order.
	ledger.variations[1].Price = 9999
	reloaded, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1000), reloaded.Items[0].UnitPrice)
	require.Equal(t, int64(3500), reloaded.Total)
}

func TestPlaceOrder_InsufficientStockCarriesShortfall(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), testLedger(), nil, nil)

	_, err := svc.PlaceOrder(context.Background(), placement(
		types.PlaceOrderLine{VariationID: 1, Quantity: 6},
	))
	require.ErrorIs(t, err, ports.ErrInsufficientStock)

	var insufficient *ports.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(1), insufficient.VariationID)
	require.Equal(t, int32(5), insufficient.Available)
	require.Equal(t, int32(6), insufficient.Requested)
}

func TestPlaceOrder_UnknownVariation(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), testLedger(), nil, nil)

	_, err := svc.PlaceOrder(context.Background(), placement(
		types.PlaceOrderLine{VariationID: 99, Quantity: 1},
	))
	require.ErrorIs(t, err, ports.ErrVariationNotFound)
}

func TestPlaceOrder_ValidatesInput(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), testLedger(), nil, nil)

	input := placement(types.PlaceOrderLine{VariationID: 1, Quantity: 1})
	input.CustomerName = ""
	_, err := svc.PlaceOrder(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrEmptyCustomerName)

	_, err = svc.PlaceOrder(context.Background(), placement())
	require.ErrorIs(t, err, domain.ErrEmptyItems)

	_, err = svc.PlaceOrder(context.Background(), placement(
		types.PlaceOrderLine{VariationID: 1, Quantity: -1},
	))
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestPlaceOrder_IdempotentReplayReturnsSameOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	keys := newFakeKeyStore()
	svc := NewService(repo, testLedger(), keys, nil)

	input := placement(types.PlaceOrderLine{VariationID: 1, Quantity: 1})
	input.IdempotencyKey = "retry-abc"

	first, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	second, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Len(t, repo.orders, 1)
}

func TestPlaceOrder_IdempotencyKeyReuseWithDifferentCartFails(t *testing.T) {
	keys := newFakeKeyStore()
	svc := NewService(newFakeOrderRepo(), testLedger(), keys, nil)

	input := placement(types.PlaceOrderLine{VariationID: 1, Quantity: 1})
	input.IdempotencyKey = "retry-abc"
	_, err := svc.PlaceOrder(context.Background(), input)
	require.NoError(t, err)

	changed := placement(types.PlaceOrderLine{VariationID: 1, Quantity: 2})
	changed.IdempotencyKey = "retry-abc"
	_, err = svc.PlaceOrder(context.Background(), changed)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

func TestPlaceOrder_NotifiesAfterCommit(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(newFakeOrderRepo(), testLedger(), nil, notifier)

	order, err := svc.PlaceOrder(context.Background(), placement(
		types.PlaceOrderLine{VariationID: 1, Quantity: 1},
	))
	require.NoError(t, err)
	require.Equal(t, []int64{order.ID}, notifier.placed)
}

func TestAdvanceOrderStatus_EmitsOldAndNewStatus(t *testing.T) {
	repo := newFakeOrderRepo()
	notifier := &recordingNotifier{}
	svc := NewService(repo, testLedger(), nil, notifier)

	order, err := svc.PlaceOrder(context.Background(), placement(
		types.PlaceOrderLine{VariationID: 1, Quantity: 1},
	))
	require.NoError(t, err)

	updated, err := svc.AdvanceOrderStatus(context.Background(), order.ID, "confirmed")
	require.NoError(t, err)
	require.Equal(t, domain.StatusConfirmed, updated.Status)
	require.Equal(t, []string{"PENDING->CONFIRMED"}, notifier.transitions)
}

func TestAdvanceOrderStatus_InvalidStatusValue(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), testLedger(), nil, nil)

	_, err := svc.AdvanceOrderStatus(context.Background(), 1, "RETURNED")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestAdvanceOrderStatus_UnknownOrder(t *testing.T) {
	svc := NewService(newFakeOrderRepo(), testLedger(), nil, nil)

	_, err := svc.AdvanceOrderStatus(context.Background(), 42, "CONFIRMED")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
