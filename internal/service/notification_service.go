package service

import (
	"fmt"

	"carehome-be-svc/internal/billing"
	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/pkg/logger"
)

// NotificationService defines the interface for notification business operations
type NotificationService interface {
	GetNotifications(recipient string, unreadOnly bool, page int, limit int) ([]*models.Notification, int64, error)
	MarkRead(id uint) error
	NotifyVisitScheduled(resident *models.Resident, visit *models.Visit)
	NotifyBillOverdue(bill billing.EnhancedBill)
}

// notificationService implements NotificationService
type notificationService struct {
	notificationRepo repository.NotificationRepository
	logger           *logger.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository, appLogger *logger.Logger) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		logger:           appLogger,
	}
}

// GetNotifications lists a recipient's notifications with pagination
func (s *notificationService) GetNotifications(recipient string, unreadOnly bool, page int, limit int) ([]*models.Notification, int64, error) {
	return s.notificationRepo.GetNotificationsByRecipient(recipient, unreadOnly, page, limit)
}

// MarkRead sets the read flag on a notification
func (s *notificationService) MarkRead(id uint) error {
	if err := s.notificationRepo.MarkNotificationRead(id); err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// NotifyVisitScheduled emits a notification for a newly scheduled visit.
// Notification failures are logged, never propagated: a missed notification
// must not fail the operation that triggered it.
func (s *notificationService) NotifyVisitScheduled(resident *models.Resident, visit *models.Visit) {
	residentID := resident.ID
	notification := &models.Notification{
		Recipient:  "staff",
		ResidentID: &residentID,
		Category:   models.NotificationCategoryVisit,
		Title:      "Visit scheduled",
		Body: fmt.Sprintf("%s (%s) scheduled a visit to %s on %s",
			visit.VisitorName, visit.Relationship, resident.FullName,
			visit.ScheduledAt.Format("2006-01-02 15:04")),
	}

	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		s.logger.WithError(err).WithField("visit_id", visit.ID).Error("Failed to create visit notification")
	}
}

// NotifyBillOverdue emits an overdue payment reminder for a bill
func (s *notificationService) NotifyBillOverdue(bill billing.EnhancedBill) {
	residentID := bill.ResidentID
	notification := &models.Notification{
		Recipient:  "family",
		ResidentID: &residentID,
		Category:   models.NotificationCategoryBilling,
		Title:      "Payment overdue",
		Body: fmt.Sprintf("Bill #%d for %s (due %s) is overdue, amount %d",
			bill.ID, bill.ResidentName, bill.DueDate.Format("2006-01-02"), bill.Amount),
	}

	if err := s.notificationRepo.CreateNotification(notification); err != nil {
		s.logger.WithError(err).WithField("bill_id", bill.ID).Error("Failed to create overdue notification")
	}
}
