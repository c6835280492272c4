package repository

import (
	"context"
	"time"

	"github.com/crestline-build/bidtrack-api/internal/domain"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository handles notification data access operations
type NotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository instance
func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create creates a new notification
func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// ListByUser returns notifications for one user, newest first
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool, limit int) ([]domain.Notification, error) {
	var notifications []domain.Notification
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

// ExistsForEntityToday reports whether the user already has a notification
// of the given type for the entity created today. The reminder job uses
// this to avoid piling duplicates on every run.
func (r *NotificationRepository) ExistsForEntityToday(ctx context.Context, userID uuid.UUID, nType domain.NotificationType, entityID uuid.UUID, day time.Time) (bool, error) {
	var count int64
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	err := r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND type = ? AND entity_id = ? AND created_at >= ?", userID, nType, entityID, startOfDay).
		Count(&count).Error
	return count > 0, err
}

// MarkRead marks one notification read for the owning user
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{"read": true, "read_at": now}).Error
}

// MarkAllRead marks every unread notification read for the user
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&domain.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{"read": true, "read_at": now}).Error
}
