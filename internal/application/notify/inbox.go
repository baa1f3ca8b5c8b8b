package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/helios/backend/internal/domain/notification"
	"github.com/helios/backend/internal/domain/shared"
)

// Inbox lists a user's notifications, newest first
func (s *Service) Inbox(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	return s.notificationRepo.FindByUser(ctx, userID, filter)
}

// UnreadCount counts a user's unread notifications
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, userID)
}

// MarkRead marks one notification as read and returns it, so clients
// can jump to the order it refers to.
// Users can only touch their own notifications.
func (s *Service) MarkRead(ctx context.Context, notificationID, userID uuid.UUID) (*notification.Notification, error) {
	n, err := s.notificationRepo.FindByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, shared.ErrForbidden
	}

	n.MarkRead()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// MarkAllRead marks all of a user's notifications as read
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}
