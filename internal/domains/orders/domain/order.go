package domain

import (
	"errors"
	"strings"
	"time"
)

// Status enumerates the fulfillment pipeline of an order.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusPreparing Status = "PREPARING"
	StatusShipped   Status = "SHIPPED"
	StatusDelivered Status = "DELIVERED"
	StatusCanceled  Status = "CANCELED"
)

var (
	ErrInvalidStatus       = errors.New("order status is invalid")
	ErrEmptyItems          = errors.New("order must contain at least one item")
	ErrInvalidQuantity     = errors.New("item quantity must be greater than zero")
	ErrInvalidVariationRef = errors.New("item variation id must be greater than zero")
	ErrInvalidStoreRef     = errors.New("order store id must be greater than zero")
	ErrEmptyCustomerName   = errors.New("customer name is required")
	ErrEmptyCustomerPhone  = errors.New("customer phone is required")
)

// Statuses lists every known status value.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusShipped,
		StatusDelivered,
		StatusCanceled,
	}
}

// ParseStatus validates a raw status value before the state machine runs.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	default:
		return false
	}
}

// StockAction describes how a status transition affects variation stock.
type StockAction int

const (
	// ActionNone leaves stock untouched.
	ActionNone StockAction = iota
	// ActionDeduct removes each line quantity from its variation.
	ActionDeduct
	// ActionReturn puts each line quantity back on its variation.
	ActionReturn
)

func (a StockAction) String() string {
	switch a {
	case ActionDeduct:
		return "deduct"
	case ActionReturn:
		return "return"
	default:
		return "none"
	}
}

type transition struct {
	from Status
	to   Status
}

// stockTransitions holds every transition that moves stock. Stock is deducted
// once, the first time an order leaves a not-yet-committed state (PENDING or
// CANCELED) into any fulfilling state, and returned when an order that already
// had stock deducted is canceled. Everything absent from the table is ActionNone.
var stockTransitions = map[transition]StockAction{
	{StatusPending, StatusConfirmed}:  ActionDeduct,
	{StatusPending, StatusPreparing}:  ActionDeduct,
	{StatusPending, StatusShipped}:    ActionDeduct,
	{StatusPending, StatusDelivered}:  ActionDeduct,
	{StatusCanceled, StatusConfirmed}: ActionDeduct,
	{StatusCanceled, StatusPreparing}: ActionDeduct,
	{StatusCanceled, StatusShipped}:   ActionDeduct,
	{StatusCanceled, StatusDelivered}: ActionDeduct,

	{StatusConfirmed, StatusCanceled}: ActionReturn,
	{StatusPreparing, StatusCanceled}: ActionReturn,
	{StatusShipped, StatusCanceled}:   ActionReturn,
	{StatusDelivered, StatusCanceled}: ActionReturn,
}

// StockActionFor resolves the stock effect of moving an order from old to next.
func StockActionFor(old, next Status) (StockAction, error) {
	if !isValidStatus(old) || !isValidStatus(next) {
		return ActionNone, ErrInvalidStatus
	}
	return stockTransitions[transition{from: old, to: next}], nil
}

// Item is one purchased line: a variation reference, a quantity, and the unit
// price snapshot taken at order time. The snapshot is intentionally decoupled
// from the variation's live price so historical orders stay stable.
type Item struct {
	ID          int64
	OrderID     int64
	VariationID int64
	Quantity    int32
	UnitPrice   int64
}

// Subtotal returns the line total in minor currency units.
func (i Item) Subtotal() int64 {
	return int64(i.Quantity) * i.UnitPrice
}

// Order models one customer purchase against a store.
type Order struct {
	ID            int64
	StoreID       int64
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Status        Status
	Total         int64
	Notes         string
	Items         []Item
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewOrder validates and constructs a pending order from its lines. The total
// is derived from the lines, never accepted from callers.
func NewOrder(storeID int64, customerName, customerPhone, customerEmail, notes string, items []Item) (*Order, error) {
	order := &Order{
		StoreID:       storeID,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerPhone: strings.TrimSpace(customerPhone),
		CustomerEmail: strings.TrimSpace(customerEmail),
		Status:        StatusPending,
		Notes:         strings.TrimSpace(notes),
		Items:         append([]Item{}, items...),
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	order.Total = order.itemsTotal()
	return order, nil
}

// Validate enforces the aggregate invariants.
func (o *Order) Validate() error {
	if o.StoreID <= 0 {
		return ErrInvalidStoreRef
	}
	if o.CustomerName == "" {
		return ErrEmptyCustomerName
	}
	if o.CustomerPhone == "" {
		return ErrEmptyCustomerPhone
	}
	if !isValidStatus(o.Status) {
		return ErrInvalidStatus
	}
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}
	for _, item := range o.Items {
		if item.VariationID <= 0 {
			return ErrInvalidVariationRef
		}
		if item.Quantity <= 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

func (o *Order) itemsTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}
