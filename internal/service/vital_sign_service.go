package service

import (
	"fmt"

	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/pkg/logger"
)

// VitalSignService defines the interface for vital sign business operations
type VitalSignService interface {
	RecordVitalSign(vitalSign *models.VitalSign) error
	GetVitalSignsByResident(residentID uint, page int, limit int) ([]*models.VitalSign, int64, error)
	GetLatestVitalSign(residentID uint) (*models.VitalSign, error)
}

// vitalSignService implements VitalSignService
type vitalSignService struct {
	vitalSignRepo repository.VitalSignRepository
	residentRepo  repository.ResidentRepository
	logger        *logger.Logger
}

// NewVitalSignService creates a new vital sign service
func NewVitalSignService(
	vitalSignRepo repository.VitalSignRepository,
	residentRepo repository.ResidentRepository,
	appLogger *logger.Logger,
) VitalSignService {
	return &vitalSignService{
		vitalSignRepo: vitalSignRepo,
		residentRepo:  residentRepo,
		logger:        appLogger,
	}
}

// RecordVitalSign stores a new vital sign measurement for a resident
func (s *vitalSignService) RecordVitalSign(vitalSign *models.VitalSign) error {
	if _, err := s.residentRepo.GetResidentByID(vitalSign.ResidentID); err != nil {
		return fmt.Errorf("failed to get resident: %w", err)
	}
	if vitalSign.MeasuredAt.IsZero() {
		return fmt.Errorf("measured_at is required")
	}

	if err := s.vitalSignRepo.CreateVitalSign(vitalSign); err != nil {
		return fmt.Errorf("failed to record vital sign: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id":   vitalSign.ResidentID,
		"vital_sign_id": vitalSign.ID,
	}).Info("Vital sign recorded")

	return nil
}

// GetVitalSignsByResident lists a resident's vital signs with pagination
func (s *vitalSignService) GetVitalSignsByResident(residentID uint, page int, limit int) ([]*models.VitalSign, int64, error) {
	return s.vitalSignRepo.GetVitalSignsByResidentID(residentID, page, limit)
}

// GetLatestVitalSign returns the most recent measurement for a resident
func (s *vitalSignService) GetLatestVitalSign(residentID uint) (*models.VitalSign, error) {
	vital, err := s.vitalSignRepo.GetLatestVitalSign(residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest vital sign: %w", err)
	}
	return vital, nil
}
