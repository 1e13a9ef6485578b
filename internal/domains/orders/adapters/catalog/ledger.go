// Package catalog adapts the catalog bounded context to the stock ledger
// port the order engine consumes.
package catalog

import (
	"context"
	"errors"

	catalogports "github.com/shopgrid/marketplace-api/internal/domains/catalog/ports"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
)

var _ ports.StockLedger = (*Ledger)(nil)

// Ledger translates between the catalog repository and the order engine's
// view of variation availability.
type Ledger struct {
	repo catalogports.Repository
}

func NewLedger(repo catalogports.Repository) *Ledger {
	return &Ledger{repo: repo}
}

func (l *Ledger) VariationByID(ctx context.Context, id int64) (*ports.VariationAvailability, error) {
	variation, err := l.repo.GetVariation(ctx, id)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	availability := &ports.VariationAvailability{
		ID:        variation.ID,
		ProductID: variation.ProductID,
		Price:     variation.Price,
		Stock:     variation.Stock,
	}
	if variation.DiscountPrice != nil {
		d := *variation.DiscountPrice
		availability.DiscountPrice = &d
	}
	return availability, nil
}

func (l *Ledger) DeductStock(ctx context.Context, variationID int64, qty int32) error {
	return mapLedgerError(l.repo.DeductStock(ctx, variationID, qty))
}

func (l *Ledger) ReturnStock(ctx context.Context, variationID int64, qty int32) error {
	return mapLedgerError(l.repo.ReturnStock(ctx, variationID, qty))
}

func mapLedgerError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, catalogports.ErrVariationNotFound) {
		return ports.ErrVariationNotFound
	}
	var shortfall *catalogports.InsufficientStockError
	if errors.As(err, &shortfall) {
		return &ports.InsufficientStockError{
			VariationID: shortfall.VariationID,
			Available:   shortfall.Available,
			Requested:   shortfall.Requested,
		}
	}
	return err
}
