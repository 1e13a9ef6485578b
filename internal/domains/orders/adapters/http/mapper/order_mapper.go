package mapper

import (
	"time"

	"github.com/shopgrid/marketplace-api/internal/domains/orders/application/types"
	"github.com/shopgrid/marketplace-api/internal/domains/orders/domain"
)

// OrderItem is the transport representation of one order line.
type OrderItem struct {
	ID          int64 `json:"id,omitempty"`
	VariationID int64 `json:"variationId"`
	Quantity    int32 `json:"quantity"`
	UnitPrice   int64 `json:"unitPrice"`
	Subtotal    int64 `json:"subtotal"`
}

// Order is the transport representation of a placed order.
type Order struct {
	ID            int64       `json:"id"`
	StoreID       int64       `json:"storeId"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	Status        string      `json:"status"`
	Total         int64       `json:"total"`
	Notes         string      `json:"notes,omitempty"`
	Items         []OrderItem `json:"items"`
	CreatedAt     time.Time   `json:"createdAt,omitempty"`
	UpdatedAt     time.Time   `json:"updatedAt,omitempty"`
}

// PlaceOrderLine is one requested line of a placement payload.
type PlaceOrderLine struct {
	VariationID int64 `json:"variationId" binding:"required"`
	Quantity    int32 `json:"quantity" binding:"required"`
}

// PlaceOrderRequest is the inbound placement payload. Prices and totals are
// never accepted from the client; they are derived from the catalog.
type PlaceOrderRequest struct {
	CustomerName  string           `json:"customerName" binding:"required"`
	CustomerPhone string           `json:"customerPhone" binding:"required"`
	CustomerEmail string           `json:"customerEmail"`
	Notes         string           `json:"notes"`
	Items         []PlaceOrderLine `json:"items" binding:"required"`
}

// UpdateOrderStatusRequest carries the requested target status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ToPlaceOrderInput converts the placement payload into the application input.
func ToPlaceOrderInput(storeID int64, req PlaceOrderRequest, idempotencyKey string) types.PlaceOrderInput {
	lines := make([]types.PlaceOrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, types.PlaceOrderLine{VariationID: item.VariationID, Quantity: item.Quantity})
	}
	return types.PlaceOrderInput{
		StoreID:        storeID,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		CustomerEmail:  req.CustomerEmail,
		Notes:          req.Notes,
		Lines:          lines,
		IdempotencyKey: idempotencyKey,
	}
}

// FromDomainOrder converts a domain order to the transport representation.
func FromDomainOrder(order *domain.Order) Order {
	if order == nil {
		return Order{}
	}
	items := make([]OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItem{
			ID:          item.ID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		})
	}
	return Order{
		ID:            order.ID,
		StoreID:       order.StoreID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		CustomerEmail: order.CustomerEmail,
		Status:        string(order.Status),
		Total:         order.Total,
		Notes:         order.Notes,
		Items:         items,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

// FromDomainOrderList maps a slice of domain orders to transport orders.
func FromDomainOrderList(list []*domain.Order) []Order {
	result := make([]Order, 0, len(list))
	for _, order := range list {
		result = append(result, FromDomainOrder(order))
	}
	return result
}
