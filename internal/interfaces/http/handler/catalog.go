package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/helios/backend/internal/application/catalog"
)

// CatalogHandler serves the public storefront catalog
type CatalogHandler struct {
	BaseHandler
	catalogService *appcatalog.Service
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *appcatalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, logger: logger}
}

// ListProducts returns all purchasable products
// GET /api/v1/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter := toFilter(parseListRequest(c))

	products, err := h.catalogService.ListProducts(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// GetProduct returns one product by slug
// GET /api/v1/products/:slug
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// ListCategories returns all categories
// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}

// ListByCategory returns the purchasable products in a category
// GET /api/v1/categories/:slug/products
func (h *CatalogHandler) ListByCategory(c *gin.Context) {
	filter := toFilter(parseListRequest(c))

	products, err := h.catalogService.ListByCategory(c.Request.Context(), c.Param("slug"), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}
