package application

import (
	"errors"
	"fmt"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid order input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyItems) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrInvalidVariationRef) ||
		errors.Is(err, domain.ErrInvalidStoreRef) ||
		errors.Is(err, domain.ErrEmptyCustomerName) ||
		errors.Is(err, domain.ErrEmptyCustomerPhone) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
