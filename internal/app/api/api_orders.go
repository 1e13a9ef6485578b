package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/shopgrid/marketplace-api/internal/domains/orders/adapters/http/mapper"
	ordersports "github.com/shopgrid/marketplace-api/internal/domains/orders/ports"
)

// IdempotencyKeyHeader carries the client token that makes placement retries safe.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderAPI wires HTTP transport with the orders bounded context service.
type OrderAPI struct {
	service ordersports.Service
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service) OrderAPI {
	return OrderAPI{service: service}
}

// Post /api/v1/stores/:storeId/orders
// Place a new order against a storefront
func (api *OrderAPI) PlaceOrder(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	var payload ordermapper.PlaceOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	input := ordermapper.ToPlaceOrderInput(storeID, payload, c.GetHeader(IdempotencyKeyHeader))
	order, err := api.service.PlaceOrder(c.Request.Context(), input)
	if err != nil {
		orderResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

// Get /api/v1/orders/:orderId
// Fetch an order with its line items
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		orderResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

// Get /api/v1/stores/:storeId/orders
// List a storefront's orders, newest first
func (api *OrderAPI) ListStoreOrders(c *gin.Context) {
	storeID, ok := parseIDParam(c, "storeId")
	if !ok {
		return
	}
	orders, err := api.service.ListStoreOrders(c.Request.Context(), storeID)
	if err != nil {
		orderResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrderList(orders))
}

// Patch /api/v1/orders/:orderId/status
// Move an order to a new status, adjusting stock when the transition requires it
func (api *OrderAPI) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload ordermapper.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := api.service.AdvanceOrderStatus(c.Request.Context(), id, payload.Status)
	if err != nil {
		orderResponder.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := c.Param(name)
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return id, true
}
