package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appnewsletter "github.com/helios/backend/internal/application/newsletter"
)

// NewsletterHandler manages mailing list subscriptions
type NewsletterHandler struct {
	BaseHandler
	newsletterService *appnewsletter.Service
	logger            *zap.Logger
}

// NewNewsletterHandler creates a new NewsletterHandler
func NewNewsletterHandler(newsletterService *appnewsletter.Service, logger *zap.Logger) *NewsletterHandler {
	return &NewsletterHandler{newsletterService: newsletterService, logger: logger}
}

// SubscribeRequest carries the email address for the mailing list
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe adds an email to the mailing list
// POST /api/v1/newsletter/subscribe
func (h *NewsletterHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.newsletterService.Subscribe(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Unsubscribe removes an email from future mailings
// POST /api/v1/newsletter/unsubscribe
func (h *NewsletterHandler) Unsubscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.newsletterService.Unsubscribe(c.Request.Context(), req.Email); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
