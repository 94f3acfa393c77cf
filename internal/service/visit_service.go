package service

import (
	"fmt"
	"time"

	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/pkg/logger"
)

// VisitService defines the interface for visit business operations
type VisitService interface {
	ScheduleVisit(visit *models.Visit) error
	GetVisitsByResident(residentID uint, page int, limit int) ([]*models.Visit, int64, error)
	UpdateVisitStatus(id uint, status string) error
}

// visitService implements VisitService
type visitService struct {
	visitRepo           repository.VisitRepository
	residentRepo        repository.ResidentRepository
	notificationService NotificationService
	logger              *logger.Logger
}

// NewVisitService creates a new visit service
func NewVisitService(
	visitRepo repository.VisitRepository,
	residentRepo repository.ResidentRepository,
	notificationService NotificationService,
	appLogger *logger.Logger,
) VisitService {
	return &visitService{
		visitRepo:           visitRepo,
		residentRepo:        residentRepo,
		notificationService: notificationService,
		logger:              appLogger,
	}
}

// validVisitTransitions maps a visit status to the statuses it may move to
var validVisitTransitions = map[string][]string{
	models.VisitStatusScheduled: {models.VisitStatusApproved, models.VisitStatusCancelled},
	models.VisitStatusApproved:  {models.VisitStatusCompleted, models.VisitStatusCancelled},
}

// ScheduleVisit creates a new visit request for a resident
func (s *visitService) ScheduleVisit(visit *models.Visit) error {
	resident, err := s.residentRepo.GetResidentByID(visit.ResidentID)
	if err != nil {
		return fmt.Errorf("failed to get resident: %w", err)
	}
	if visit.ScheduledAt.Before(time.Now()) {
		return fmt.Errorf("visit cannot be scheduled in the past")
	}

	visit.Status = models.VisitStatusScheduled
	if err := s.visitRepo.CreateVisit(visit); err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}

	s.notificationService.NotifyVisitScheduled(resident, visit)

	s.logger.WithFields(map[string]interface{}{
		"visit_id":    visit.ID,
		"resident_id": visit.ResidentID,
	}).Info("Visit scheduled")

	return nil
}

// GetVisitsByResident lists a resident's visits with pagination
func (s *visitService) GetVisitsByResident(residentID uint, page int, limit int) ([]*models.Visit, int64, error) {
	return s.visitRepo.GetVisitsByResidentID(residentID, page, limit)
}

// UpdateVisitStatus moves a visit through its lifecycle
func (s *visitService) UpdateVisitStatus(id uint, status string) error {
	visit, err := s.visitRepo.GetVisitByID(id)
	if err != nil {
		return fmt.Errorf("failed to get visit: %w", err)
	}

	allowed := false
	for _, next := range validVisitTransitions[visit.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("invalid status transition from %q to %q", visit.Status, status)
	}

	if err := s.visitRepo.UpdateVisitStatus(id, status); err != nil {
		return fmt.Errorf("failed to update visit status: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"visit_id": id,
		"from":     visit.Status,
		"to":       status,
	}).Info("Visit status updated")

	return nil
}
