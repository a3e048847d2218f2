package northwindserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	orderhttpmapper "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/adapters/http/mapper"
	ordersdomain "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/domain"
	ordersports "github.com/LilDoor/Northwind-order-system-WebApi/internal/domains/orders/ports"
)

const (
	defaultListSkip  = 0
	defaultListCount = 10
)

// OrderAPI wires HTTP transport with the orders bounded context service and workflows.
type OrderAPI struct {
	service   ordersports.Service
	workflows ordersports.WorkflowOrchestrator
}

// NewOrderAPI creates an OrderAPI backed by the provided service.
func NewOrderAPI(service ordersports.Service, workflows ordersports.WorkflowOrchestrator) OrderAPI {
	return OrderAPI{service: service, workflows: workflows}
}

// Get /api/orders/:orderId
// Find order by ID
func (api *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	order, err := api.service.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainFull(order))
}

// Get /api/orders
// List orders page by page, without their detail lines
func (api *OrderAPI) ListOrders(c *gin.Context) {
	skip, ok := parseQueryInt(c, "skip", defaultListSkip)
	if !ok {
		return
	}
	count, ok := parseQueryInt(c, "count", defaultListCount)
	if !ok {
		return
	}
	orders, err := api.service.ListOrders(c.Request.Context(), skip, count)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, orderhttpmapper.FromDomainBriefList(orders))
}

// Post /api/orders
// Add a new order together with its customer and employee snapshots
func (api *OrderAPI) AddOrder(c *gin.Context) {
	var payload orderhttpmapper.BriefOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	order, err := orderhttpmapper.ToDomainOrder(payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	id, err := api.submitOrder(c.Request.Context(), order)
	if err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, orderhttpmapper.AddOrderResult{OrderID: id})
}

func (api *OrderAPI) submitOrder(ctx context.Context, order *ordersdomain.Order) (int64, error) {
	if api.workflows != nil {
		return api.workflows.SubmitOrder(ctx, order)
	}
	return api.service.AddOrder(ctx, order)
}

// Put /api/orders/:orderId
// Update an existing order header, leaving its detail lines untouched
func (api *OrderAPI) UpdateOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	var payload orderhttpmapper.BriefOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	if payload.ID != id {
		respondBadRequestDetail(c, "order id in path does not match order id in body")
		return
	}
	order, err := orderhttpmapper.ToDomainOrder(payload)
	if err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := api.service.UpdateOrder(c.Request.Context(), order); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Delete /api/orders/:orderId
// Remove an order and its detail lines
func (api *OrderAPI) RemoveOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "orderId")
	if !ok {
		return
	}
	if err := api.service.RemoveOrder(c.Request.Context(), id); err != nil {
		respondOrderServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
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

func parseQueryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, err)
		return 0, false
	}
	return value, true
}
