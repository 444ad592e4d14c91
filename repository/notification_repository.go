package repository

import (
	"context"
	"errors"

	"notification-service/models"

	"gorm.io/gorm"
)

// NotificationRepository is the persistence collaborator for the delivery
// orchestrator and the query service. Absence is reported as (nil, nil),
// never as an error.
type NotificationRepository interface {
	Save(ctx context.Context, n *models.Notification) (*models.Notification, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Notification, error)
	FindByUserIDAndStatus(ctx context.Context, userID string, status models.NotificationStatus) ([]models.Notification, error)
	FindPendingNotifications(ctx context.Context) ([]models.Notification, error)
	ExistsByUserIDAndType(ctx context.Context, userID string, t models.NotificationType) (bool, error)
	CountByUserIDAndStatus(ctx context.Context, userID string, status models.NotificationStatus) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Save(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	if err := r.db.WithContext(ctx).Save(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

func (r *notificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepository) FindByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) FindByUserIDAndStatus(ctx context.Context, userID string, status models.NotificationStatus) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, status).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) FindPendingNotifications(ctx context.Context) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("status = ?", models.StatusPending).
		Order("created_at ASC").
		Find(&notifications).Error
	return notifications, err
}

func (r *notificationRepository) ExistsByUserIDAndType(ctx context.Context, userID string, t models.NotificationType) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", userID, t).
		Count(&count).Error
	return count > 0, err
}

func (r *notificationRepository) CountByUserIDAndStatus(ctx context.Context, userID string, status models.NotificationStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}
