package handlers

import (
	"errors"
	"net/http"

	"comandas_backend/internal/middleware"
	"comandas_backend/internal/models"
	"comandas_backend/internal/projection"
	"comandas_backend/internal/services"
	"comandas_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder handles the creation of a new order with its items
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Actor not authenticated.", ""))
		return
	}

	var req services.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateOrder: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	createdOrder, err := h.orderService.CreateOrder(actor, req)
	if err != nil {
		utils.LogError(err, "CreateOrder: Error from orderService.CreateOrder")
		switch {
		case errors.Is(err, services.ErrTableUnavailable):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Table is not available for a new order.", err.Error()))
		case errors.Is(err, services.ErrEmptyOrder):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Order must contain at least one item.", err.Error()))
		case errors.Is(err, services.ErrInvalidAccount):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Account does not resolve to an active staff member.", err.Error()))
		case errors.Is(err, services.ErrProductNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "One or more products not found.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, createdOrder)
}

// GetActiveOrders handles fetching all orders not yet paid
func (h *OrderHandler) GetActiveOrders(c *gin.Context) {
	orders, err := h.orderService.GetActiveOrders()
	if err != nil {
		utils.LogError(err, "GetActiveOrders: Error from orderService.GetActiveOrders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch active orders.", "Internal error"))
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// GetOrderHistory handles fetching the full history projection: per-month
// groups (UTC boundaries, most recent first) plus the ungrouped listing.
func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	orders, err := h.orderService.GetOrderHistory()
	if err != nil {
		utils.LogError(err, "GetOrderHistory: Error from orderService.GetOrderHistory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order history.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, projection.BuildHistory(orders))
}

// GetKitchenBoard serves the kitchen's three-bucket view of active orders.
func (h *OrderHandler) GetKitchenBoard(c *gin.Context) {
	orders, err := h.orderService.GetActiveOrders()
	if err != nil {
		utils.LogError(err, "GetKitchenBoard: Error fetching active orders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch kitchen board.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, projection.BuildKitchenBoard(orders))
}

// GetAdminBoard serves the four-bucket operational kanban.
func (h *OrderHandler) GetAdminBoard(c *gin.Context) {
	orders, err := h.orderService.GetActiveOrders()
	if err != nil {
		utils.LogError(err, "GetAdminBoard: Error fetching active orders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch admin board.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, projection.BuildAdminBoard(orders))
}

// GetWaiterLists serves the waiter's ready/delivered actionable lists.
func (h *OrderHandler) GetWaiterLists(c *gin.Context) {
	orders, err := h.orderService.GetActiveOrders()
	if err != nil {
		utils.LogError(err, "GetWaiterLists: Error fetching active orders")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch waiter lists.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, projection.BuildWaiterLists(orders))
}

// GetOrderByID handles fetching a single order by ID with its items
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	orderID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID format.", err.Error()))
		return
	}

	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		utils.LogError(err, "GetOrderByID: Error from orderService.GetOrderByID for ID "+c.Param("id"))
		if errors.Is(err, services.ErrOrderNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch order.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatusRequest is the PATCH /orders/:id/status payload.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles a transition request. The transition engine makes
// every accept/reject decision; the handler only translates errors.
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Actor not authenticated.", ""))
		return
	}

	orderID, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order ID format.", err.Error()))
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateOrderStatus: Failed to bind JSON for ID "+c.Param("id"))
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Unknown order status: "+req.Status, ""))
		return
	}

	updatedOrder, err := h.orderService.RequestTransition(actor, orderID, models.OrderStatus(req.Status))
	if err != nil {
		utils.LogError(err, "UpdateOrderStatus: Error from orderService.RequestTransition for ID "+c.Param("id"))
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Order not found.", err.Error()))
		case errors.Is(err, services.ErrInvalidTransition):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Status transition not allowed from current state.", err.Error()))
		case errors.Is(err, services.ErrUnauthorizedEdge):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Role not authorized for this status transition.", err.Error()))
		case errors.Is(err, services.ErrInvalidOrderStatus):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid order status provided.", err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update order status.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, updatedOrder)
}
