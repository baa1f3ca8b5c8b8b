package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apporder "github.com/helios/backend/internal/application/order"
)

// OrderHandler serves a buyer's own orders
type OrderHandler struct {
	BaseHandler
	orderService *apporder.Service
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *apporder.Service, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, logger: logger}
}

// List returns the authenticated buyer's orders
// GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := toFilter(parseListRequest(c))

	orders, err := h.orderService.ListForUser(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Get returns one of the buyer's orders with its items and address
// GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	detail, err := h.orderService.GetForUser(c.Request.Context(), orderID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// Cancel cancels one of the buyer's orders
// POST /api/v1/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req apporder.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	detail, err := h.orderService.CancelForUser(c.Request.Context(), orderID, userID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("order cancelled by buyer",
		zap.String("order_id", orderID.String()))

	h.Success(c, detail)
}
