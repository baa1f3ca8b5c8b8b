package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/helios/backend/internal/domain/shared"
)

// Notification is an in-app message shown to a user,
// typically raised when an order touches one of their listings
type Notification struct {
	shared.BaseEntity
	UserID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Message     string    `gorm:"type:varchar(500);not null"`
	OrderNumber string    `gorm:"type:varchar(50)"`
	IsRead      bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates an unread notification for a user
func NewNotification(userID uuid.UUID, message, orderNumber string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Notification must target a user")
	}
	if message == "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Notification message cannot be empty")
	}

	return &Notification{
		BaseEntity:  shared.NewBaseEntity(),
		UserID:      userID,
		Message:     message,
		OrderNumber: orderNumber,
		IsRead:      false,
	}, nil
}

// MarkRead marks the notification as read
func (n *Notification) MarkRead() {
	if n.IsRead {
		return
	}
	n.IsRead = true
	n.UpdatedAt = time.Now()
}
