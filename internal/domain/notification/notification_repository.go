package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/helios/backend/internal/domain/shared"
)

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	// FindByID finds a notification by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)

	// FindByUser finds a user's notifications, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Notification, error)

	// CountUnread counts a user's unread notifications
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error

	// MarkAllRead marks all of a user's notifications as read
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
}

// SubscriberRepository defines the interface for newsletter persistence
type SubscriberRepository interface {
	// FindByEmail finds a subscriber by email address
	FindByEmail(ctx context.Context, email string) (*Subscriber, error)

	// FindSubscribed finds all currently subscribed addresses
	FindSubscribed(ctx context.Context, filter shared.Filter) ([]Subscriber, error)

	// Save creates or updates a subscriber
	Save(ctx context.Context, s *Subscriber) error
}
