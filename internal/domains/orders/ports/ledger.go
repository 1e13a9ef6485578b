package ports

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrVariationNotFound signals a line referenced an unknown variation.
	ErrVariationNotFound = errors.New("product variation not found")
	// ErrInsufficientStock signals requested quantity exceeds availability.
	ErrInsufficientStock = errors.New("insufficient stock")
)

// InsufficientStockError carries the shortfall detail for one variation.
// It unwraps to ErrInsufficientStock.
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

// VariationAvailability is the catalog view the order engine consumes: current
// pricing and the stock counter.
type VariationAvailability struct {
	ID            int64
	ProductID     int64
	Price         int64
	DiscountPrice *int64
	Stock         int32
}

// EffectivePrice returns the unit price a new line is charged. A set discount
// price always wins over the regular price.
func (v VariationAvailability) EffectivePrice() int64 {
	if v.DiscountPrice != nil {
		return *v.DiscountPrice
	}
	return v.Price
}

// StockLedger exposes per-variation availability. DeductStock must be atomic:
// the availability check and the write happen as a single conditional
// operation, never as a read followed by a write from application code.
type StockLedger interface {
	VariationByID(ctx context.Context, id int64) (*VariationAvailability, error)
	// DeductStock removes qty from the variation, failing with
	// *InsufficientStockError when availability is below qty.
	DeductStock(ctx context.Context, variationID int64, qty int32) error
	// ReturnStock puts qty back on the variation.
	ReturnStock(ctx context.Context, variationID int64, qty int32) error
}
