package types

// PlaceOrderLine is one requested cart line.
type PlaceOrderLine struct {
	VariationID int64
	Quantity    int32
}

// PlaceOrderInput carries everything needed to place an order. The unit prices
// are never part of the input; they are snapshotted from the catalog at
// placement time.
type PlaceOrderInput struct {
	StoreID        int64
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	Notes          string
	Lines          []PlaceOrderLine
	IdempotencyKey string
}
