package repository

import (
	"gorm.io/gorm"

	"carehome-be-svc/internal/models"
)

// NotificationRepository defines the interface for notification data operations
type NotificationRepository interface {
	GetNotificationsByRecipient(recipient string, unreadOnly bool, page int, limit int) ([]*models.Notification, int64, error)
	CreateNotification(notification *models.Notification) error
	CreateBulkNotifications(notifications []*models.Notification) error
	MarkNotificationRead(id uint) error
}

// notificationRepository implements NotificationRepository
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new instance of NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

// GetNotificationsByRecipient retrieves notifications for a recipient with
// pagination, newest first
func (r *notificationRepository) GetNotificationsByRecipient(recipient string, unreadOnly bool, page int, limit int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.Model(&models.Notification{}).Where("recipient = ?", recipient)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// CreateNotification creates a new notification record
func (r *notificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// CreateBulkNotifications creates multiple notification records in batches
func (r *notificationRepository) CreateBulkNotifications(notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.CreateInBatches(notifications, 100).Error
}

// MarkNotificationRead sets the read flag on a notification
func (r *notificationRepository) MarkNotificationRead(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).Update("is_read", true).Error
}
