package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appcheckout "github.com/helios/backend/internal/application/checkout"
	"github.com/helios/backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the two-step checkout flow:
// stage the delivery address, then place the order.
type CheckoutHandler struct {
	BaseHandler
	checkoutService *appcheckout.Service
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService *appcheckout.Service, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService, logger: logger}
}

// SetShipping stages the delivery address for the session
// POST /api/v1/checkout/shipping
func (h *CheckoutHandler) SetShipping(c *gin.Context) {
	var req appcheckout.ShippingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.checkoutService.SetShipping(c.Request.Context(), middleware.GetSessionID(c), req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetShipping returns the staged delivery address. Authenticated
// buyers with nothing staged get a prefill from their last order.
// GET /api/v1/checkout/shipping
func (h *CheckoutHandler) GetShipping(c *gin.Context) {
	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	shipping, err := h.checkoutService.GetShippingForUser(c.Request.Context(), middleware.GetSessionID(c), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipping)
}

// PlaceOrder converts the session cart into a paid order.
// Guests check out anonymously; authenticated buyers get the order
// linked to their account.
// POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	var userID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		userID = &id
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), middleware.GetSessionID(c), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("order placed",
		zap.String("order_number", result.OrderNumber),
		zap.String("session_id", middleware.GetSessionID(c)))

	h.Created(c, result)
}
