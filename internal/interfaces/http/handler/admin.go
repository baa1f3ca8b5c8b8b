package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/helios/backend/internal/application/catalog"
	appfinance "github.com/helios/backend/internal/application/finance"
	apporder "github.com/helios/backend/internal/application/order"
	appseller "github.com/helios/backend/internal/application/seller"
)

// AdminHandler serves the back-office: full order management, seller
// approval, category maintenance and the impact fund ledger.
type AdminHandler struct {
	BaseHandler
	orderService   *apporder.Service
	sellerService  *appseller.Service
	catalogService *appcatalog.Service
	financeService *appfinance.Service
	logger         *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	orderService *apporder.Service,
	sellerService *appseller.Service,
	catalogService *appcatalog.Service,
	financeService *appfinance.Service,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		orderService:   orderService,
		sellerService:  sellerService,
		catalogService: catalogService,
		financeService: financeService,
		logger:         logger,
	}
}

// ListOrders returns all orders
// GET /api/v1/admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	filter := toFilter(parseListRequest(c))

	orders, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListUnshippedOrders returns paid and processing orders
// GET /api/v1/admin/orders/unshipped
func (h *AdminHandler) ListUnshippedOrders(c *gin.Context) {
	filter := toFilter(parseListRequest(c))

	orders, err := h.orderService.ListUnshipped(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// ListShippedOrders returns shipped orders
// GET /api/v1/admin/orders/shipped
func (h *AdminHandler) ListShippedOrders(c *gin.Context) {
	filter := toFilter(parseListRequest(c))

	orders, err := h.orderService.ListShipped(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetOrder returns one order with its items and address
// GET /api/v1/admin/orders/:id
func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	detail, err := h.orderService.Get(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// UpdateOrderStatus moves an order through its lifecycle
// PUT /api/v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req apporder.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	detail, err := h.orderService.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("order status updated",
		zap.String("order_id", orderID.String()),
		zap.String("status", req.Status))

	h.Success(c, detail)
}

// CancelOrder cancels an order on behalf of the marketplace
// POST /api/v1/admin/orders/:id/cancel
func (h *AdminHandler) CancelOrder(c *gin.Context) {
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

	detail, err := h.orderService.Cancel(c.Request.Context(), orderID, req.Note)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, detail)
}

// ExportOrders downloads the order book as tab-separated text
// GET /api/v1/admin/orders/export
func (h *AdminHandler) ExportOrders(c *gin.Context) {
	filter := toFilter(parseListRequest(c))

	report, err := h.orderService.Export(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="orders.tsv"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

// ExportOrderDetail downloads one order's line items, commission and
// net totals as plain text
// GET /api/v1/admin/orders/:id/export
func (h *AdminHandler) ExportOrderDetail(c *gin.Context) {
	orderID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	report, err := h.orderService.ExportDetail(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="order-%s.txt"`, orderID))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

// ListSellers returns all seller profiles
// GET /api/v1/admin/sellers
func (h *AdminHandler) ListSellers(c *gin.Context) {
	filter := toFilter(parseListRequest(c))

	sellers, err := h.sellerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sellers)
}

// ActivateSeller approves a seller profile
// POST /api/v1/admin/sellers/:id/activate
func (h *AdminHandler) ActivateSeller(c *gin.Context) {
	sellerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.sellerService.Activate(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.logger.Info("seller activated",
		zap.String("seller_id", sellerID.String()))

	h.Success(c, profile)
}

// DeactivateSeller suspends a seller profile
// POST /api/v1/admin/sellers/:id/deactivate
func (h *AdminHandler) DeactivateSeller(c *gin.Context) {
	sellerID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.sellerService.Deactivate(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// CategoryRequest names a new category
type CategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateCategory adds a catalog category
// POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.catalogService.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// DeleteCategory removes a catalog category
// DELETE /api/v1/admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.catalogService.DeleteCategory(c.Request.Context(), categoryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ImpactFund returns the fund balance and its ledger
// GET /api/v1/admin/impact-fund
func (h *AdminHandler) ImpactFund(c *gin.Context) {
	filter := toFilter(parseListRequest(c))

	summary, err := h.financeService.Summary(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// RecordDonation adds a voluntary contribution to the fund
// POST /api/v1/admin/impact-fund/donations
func (h *AdminHandler) RecordDonation(c *gin.Context) {
	var req appfinance.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.financeService.RecordDonation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// RecordExpense records money spent from the fund
// POST /api/v1/admin/impact-fund/expenses
func (h *AdminHandler) RecordExpense(c *gin.Context) {
	var req appfinance.ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	entry, err := h.financeService.RecordExpense(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// VoidImpactEntry deactivates a ledger entry
// DELETE /api/v1/admin/impact-fund/entries/:id
func (h *AdminHandler) VoidImpactEntry(c *gin.Context) {
	entryID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.financeService.VoidEntry(c.Request.Context(), entryID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
