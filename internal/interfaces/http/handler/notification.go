package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appnotify "github.com/helios/backend/internal/application/notify"
)

// NotificationHandler serves a user's in-app notification inbox
type NotificationHandler struct {
	BaseHandler
	notifyService *appnotify.Service
	logger        *zap.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifyService *appnotify.Service, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifyService: notifyService, logger: logger}
}

// Inbox returns the user's notifications, newest first.
// Pass ?unread=true to see only unread ones.
// GET /api/v1/notifications
func (h *NotificationHandler) Inbox(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter := toFilter(parseListRequest(c))
	if c.Query("unread") == "true" {
		filter.Filters["unread"] = true
	}

	notifications, err := h.notifyService.Inbox(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notifications)
}

// UnreadCount returns the number of unread notifications
// GET /api/v1/notifications/unread-count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	count, err := h.notifyService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"unread": count})
}

// MarkRead marks one notification as read and returns it; the
// order_number in the payload tells clients where to navigate
// POST /api/v1/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	notificationID, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	n, err := h.notifyService.MarkRead(c.Request.Context(), notificationID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, n)
}

// MarkAllRead marks every notification in the inbox as read
// POST /api/v1/notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.notifyService.MarkAllRead(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
