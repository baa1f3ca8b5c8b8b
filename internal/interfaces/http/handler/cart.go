package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcart "github.com/helios/backend/internal/application/cart"
	"github.com/helios/backend/internal/interfaces/http/middleware"
)

// CartHandler handles session cart operations
type CartHandler struct {
	BaseHandler
	cartService *appcart.Service
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *appcart.Service, logger *zap.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, logger: logger}
}

// QuantityRequest carries a line quantity
type QuantityRequest struct {
	Qty int `json:"qty" binding:"required,min=1"`
}

// Get returns the session cart with resolved prices
// GET /api/v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.cartService.Get(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Add puts a product in the cart. Adding a product already present
// leaves its quantity untouched.
// POST /api/v1/cart/items/:id
func (h *CartHandler) Add(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	view, err := h.cartService.Add(c.Request.Context(), middleware.GetSessionID(c), productID, req.Qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Update overwrites a line quantity
// PUT /api/v1/cart/items/:id
func (h *CartHandler) Update(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	view, err := h.cartService.Update(c.Request.Context(), middleware.GetSessionID(c), productID, req.Qty)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Remove deletes a line from the cart
// DELETE /api/v1/cart/items/:id
func (h *CartHandler) Remove(c *gin.Context) {
	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.cartService.Remove(c.Request.Context(), middleware.GetSessionID(c), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Clear empties the session cart
// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cartService.Clear(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
