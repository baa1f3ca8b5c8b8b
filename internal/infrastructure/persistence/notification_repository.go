package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/helios/backend/internal/domain/notification"
	"github.com/helios/backend/internal/domain/shared"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	var n notification.Notification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &n, nil
}

// FindByUser finds a user's notifications, newest first
func (r *GormNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	var notifications []notification.Notification
	query := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if unread, ok := filter.Filters["unread"]; ok {
		if u, ok := unread.(bool); ok && u {
			query = query.Where("is_read = ?", false)
		}
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread counts a user's unread notifications
func (r *GormNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	return r.db.WithContext(ctx).Save(n).Error
}

// MarkAllRead marks all of a user's notifications as read
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&notification.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

// Ensure GormNotificationRepository implements NotificationRepository
var _ notification.NotificationRepository = (*GormNotificationRepository)(nil)

// GormSubscriberRepository implements SubscriberRepository using GORM
type GormSubscriberRepository struct {
	db *gorm.DB
}

// NewGormSubscriberRepository creates a new GormSubscriberRepository
func NewGormSubscriberRepository(db *gorm.DB) *GormSubscriberRepository {
	return &GormSubscriberRepository{db: db}
}

// FindByEmail finds a subscriber by email address
func (r *GormSubscriberRepository) FindByEmail(ctx context.Context, email string) (*notification.Subscriber, error) {
	var s notification.Subscriber
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindSubscribed finds all currently subscribed addresses
func (r *GormSubscriberRepository) FindSubscribed(ctx context.Context, filter shared.Filter) ([]notification.Subscriber, error) {
	var subscribers []notification.Subscriber
	query := r.db.WithContext(ctx).
		Model(&notification.Subscriber{}).
		Where("is_subscribed = ?", true).
		Order("created_at DESC")

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if err := query.Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}

// Save creates or updates a subscriber
func (r *GormSubscriberRepository) Save(ctx context.Context, s *notification.Subscriber) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Ensure GormSubscriberRepository implements SubscriberRepository
var _ notification.SubscriberRepository = (*GormSubscriberRepository)(nil)
