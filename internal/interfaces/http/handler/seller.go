package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apporder "github.com/helios/backend/internal/application/order"
	appseller "github.com/helios/backend/internal/application/seller"
	"github.com/helios/backend/internal/interfaces/http/middleware"
)

// SellerHandler serves the seller dashboard: profile, listings and
// the slices of orders that contain the seller's items.
type SellerHandler struct {
	BaseHandler
	sellerService *appseller.Service
	orderService  *apporder.Service
	logger        *zap.Logger
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(sellerService *appseller.Service, orderService *apporder.Service, logger *zap.Logger) *SellerHandler {
	return &SellerHandler{sellerService: sellerService, orderService: orderService, logger: logger}
}

// Signup opens a seller profile for the authenticated user.
// New profiles start inactive until an administrator approves them.
// POST /api/v1/seller/signup
func (h *SellerHandler) Signup(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appseller.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	profile, err := h.sellerService.Signup(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("seller signup",
		zap.String("seller_id", profile.SellerID.String()),
		zap.String("business_name", profile.BusinessName))

	h.Created(c, profile)
}

// Profile returns the authenticated user's seller profile,
// active or not
// GET /api/v1/seller/profile
func (h *SellerHandler) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.sellerService.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile updates the seller's business details
// PUT /api/v1/seller/profile
func (h *SellerHandler) UpdateProfile(c *gin.Context) {
	vendor := middleware.GetSeller(c)

	var req appseller.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	profile, err := h.sellerService.UpdateProfile(c.Request.Context(), vendor.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateBankDetails updates the seller's payout details
// PUT /api/v1/seller/bank
func (h *SellerHandler) UpdateBankDetails(c *gin.Context) {
	vendor := middleware.GetSeller(c)

	var req appseller.UpdateBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.sellerService.UpdateBankDetails(c.Request.Context(), vendor.ID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListProducts returns the seller's listings
// GET /api/v1/seller/products
func (h *SellerHandler) ListProducts(c *gin.Context) {
	vendor := middleware.GetSeller(c)
	filter := toFilter(parseListRequest(c))

	products, err := h.sellerService.ListProducts(c.Request.Context(), vendor.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// CreateProduct lists a new product for the seller
// POST /api/v1/seller/products
func (h *SellerHandler) CreateProduct(c *gin.Context) {
	vendor := middleware.GetSeller(c)

	var req appseller.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.sellerService.CreateProduct(c.Request.Context(), vendor.ID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// UpdateProduct edits one of the seller's listings
// PUT /api/v1/seller/products/:id
func (h *SellerHandler) UpdateProduct(c *gin.Context) {
	vendor := middleware.GetSeller(c)

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req appseller.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.sellerService.UpdateProduct(c.Request.Context(), vendor.ID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct removes one of the seller's listings
// DELETE /api/v1/seller/products/:id
func (h *SellerHandler) DeleteProduct(c *gin.Context) {
	vendor := middleware.GetSeller(c)

	productID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.sellerService.DeleteProduct(c.Request.Context(), vendor.ID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListOrders returns the orders containing the seller's items
// GET /api/v1/seller/orders
func (h *SellerHandler) ListOrders(c *gin.Context) {
	vendor := middleware.GetSeller(c)
	filter := toFilter(parseListRequest(c))

	orders, err := h.orderService.ListForSeller(c.Request.Context(), vendor.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListUnshippedOrders returns the seller's orders awaiting fulfilment
// GET /api/v1/seller/orders/unshipped
func (h *SellerHandler) ListUnshippedOrders(c *gin.Context) {
	vendor := middleware.GetSeller(c)
	filter := toFilter(parseListRequest(c))

	orders, err := h.orderService.ListUnshippedForSeller(c.Request.Context(), vendor.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListShippedOrders returns the seller's fulfilled orders
// GET /api/v1/seller/orders/shipped
func (h *SellerHandler) ListShippedOrders(c *gin.Context) {
	vendor := middleware.GetSeller(c)
	filter := toFilter(parseListRequest(c))

	orders, err := h.orderService.ListShippedForSeller(c.Request.Context(), vendor.ID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetOrder returns the seller's view of one order
// GET /api/v1/seller/orders/:id
func (h *SellerHandler) GetOrder(c *gin.Context) {
	vendor := middleware.GetSeller(c)

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.orderService.GetForSeller(c.Request.Context(), orderID, vendor.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ExportOrder downloads the seller's slice of one order as plain text,
// itemizing lines, commission and net totals
// GET /api/v1/seller/orders/:id/export
func (h *SellerHandler) ExportOrder(c *gin.Context) {
	vendor := middleware.GetSeller(c)

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.orderService.ExportDetailForSeller(c.Request.Context(), orderID, vendor.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="order-%s.txt"`, orderID))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

// ShipOrder marks an order as shipped
// POST /api/v1/seller/orders/:id/ship
func (h *SellerHandler) ShipOrder(c *gin.Context) {
	vendor := middleware.GetSeller(c)

	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	view, err := h.orderService.MarkShippedBySeller(c.Request.Context(), orderID, vendor.ID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("order shipped",
		zap.String("order_id", orderID.String()),
		zap.String("seller_id", vendor.ID.String()))

	h.Success(c, view)
}
