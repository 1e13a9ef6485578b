package domain

import "errors"

var (
	ErrInvalidProductRef = errors.New("variation product id must be greater than zero")
	ErrNegativePrice     = errors.New("price must not be negative")
	ErrInvalidDiscount   = errors.New("discount price must not be negative")
	ErrNegativeStock     = errors.New("stock must not be negative")
)

// Variation is a purchasable configuration of a product: a size/color
// combination carrying its own price and stock count. Prices are integers in
// minor currency units; the stock field is the sole source of truth for
// availability and must be >= 0 after every committed operation.
type Variation struct {
	ID            int64
	ProductID     int64
	Size          string
	Color         string
	Price         int64
	DiscountPrice *int64
	Stock         int32
}

// NewVariation validates and constructs a variation.
func NewVariation(productID int64, size, color string, price int64, stock int32) (*Variation, error) {
	v := &Variation{ProductID: productID, Size: size, Color: color}
	if productID <= 0 {
		return nil, ErrInvalidProductRef
	}
	if err := v.Reprice(price, nil); err != nil {
		return nil, err
	}
	if err := v.Restock(stock); err != nil {
		return nil, err
	}
	return v, nil
}

// Reprice sets the regular price and an optional discount price. A set
// discount always wins when pricing order lines.
func (v *Variation) Reprice(price int64, discount *int64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	if discount != nil && *discount < 0 {
		return ErrInvalidDiscount
	}
	v.Price = price
	if discount == nil {
		v.DiscountPrice = nil
	} else {
		d := *discount
		v.DiscountPrice = &d
	}
	return nil
}

// Restock sets the absolute stock level (merchant restock path; order-driven
// deltas go through the repository's atomic deduct/return operations).
func (v *Variation) Restock(stock int32) error {
	if stock < 0 {
		return ErrNegativeStock
	}
	v.Stock = stock
	return nil
}

// Validate re-applies core invariants for persistence.
func (v *Variation) Validate() error {
	if v.ProductID <= 0 {
		return ErrInvalidProductRef
	}
	if v.Price < 0 {
		return ErrNegativePrice
	}
	if v.DiscountPrice != nil && *v.DiscountPrice < 0 {
		return ErrInvalidDiscount
	}
	if v.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}
