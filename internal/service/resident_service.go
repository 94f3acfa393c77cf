package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/pkg/logger"
)

// AdmissionRequest carries everything needed to admit a new resident
type AdmissionRequest struct {
	FullName         string
	RoomNumber       string
	DateOfBirth      *time.Time
	AdmissionDate    time.Time
	EmergencyContact string
	CarePlanIDs      []uint
	RoomTypeCode     string
}

// ResidentService defines the interface for resident business operations
type ResidentService interface {
	GetResidentByID(id uint) (*models.Resident, error)
	SearchResidents(search string, page int, limit int) ([]*models.Resident, int64, error)
	UpdateResident(resident *models.Resident) error
	DischargeResident(id uint) error
	AdmitResident(req AdmissionRequest) (*models.Resident, *models.Bill, error)
}

// residentService implements ResidentService
type residentService struct {
	residentRepo   repository.ResidentRepository
	carePlanRepo   repository.CarePlanRepository
	billingService BillingService
	logger         *logger.Logger
}

// NewResidentService creates a new resident service
func NewResidentService(
	residentRepo repository.ResidentRepository,
	carePlanRepo repository.CarePlanRepository,
	billingService BillingService,
	appLogger *logger.Logger,
) ResidentService {
	return &residentService{
		residentRepo:   residentRepo,
		carePlanRepo:   carePlanRepo,
		billingService: billingService,
		logger:         appLogger,
	}
}

// GetResidentByID gets a resident by ID
func (s *residentService) GetResidentByID(id uint) (*models.Resident, error) {
	if id == 0 {
		return nil, fmt.Errorf("invalid resident ID")
	}

	resident, err := s.residentRepo.GetResidentByID(id)
	if err != nil {
		s.logger.WithError(err).WithField("resident_id", id).Error("Failed to get resident")
		return nil, err
	}

	return resident, nil
}

// SearchResidents searches residents with pagination
func (s *residentService) SearchResidents(search string, page int, limit int) ([]*models.Resident, int64, error) {
	return s.residentRepo.SearchResidents(search, page, limit)
}

// UpdateResident saves changes to a resident
func (s *residentService) UpdateResident(resident *models.Resident) error {
	if resident.ID == 0 {
		return fmt.Errorf("invalid resident ID")
	}
	return s.residentRepo.UpdateResident(resident)
}

// DischargeResident marks a resident as discharged
func (s *residentService) DischargeResident(id uint) error {
	resident, err := s.residentRepo.GetResidentByID(id)
	if err != nil {
		return fmt.Errorf("failed to get resident: %w", err)
	}

	resident.Status = "discharged"
	if err := s.residentRepo.UpdateResident(resident); err != nil {
		return fmt.Errorf("failed to discharge resident: %w", err)
	}

	s.logger.WithField("resident_id", id).Info("Resident discharged")
	return nil
}

// AdmitResident creates the resident record, a care plan assignment and the
// prorated first invoice in sequence. The admission date must not be in the
// past; the caller-facing handler validates that before calling.
func (s *residentService) AdmitResident(req AdmissionRequest) (*models.Resident, *models.Bill, error) {
	if req.FullName == "" {
		return nil, nil, fmt.Errorf("resident name is required")
	}
	if len(req.CarePlanIDs) == 0 {
		return nil, nil, fmt.Errorf("at least one care plan is required")
	}

	plans, err := s.carePlanRepo.GetCarePlansByIDs(req.CarePlanIDs)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get care plans: %w", err)
	}
	if len(plans) != len(req.CarePlanIDs) {
		return nil, nil, fmt.Errorf("one or more care plans not found")
	}

	mainCount := 0
	var carePlansCost int64
	for _, plan := range plans {
		if plan.Category == models.PlanCategoryMain {
			mainCount++
		}
		carePlansCost += plan.MonthlyPrice
	}
	if mainCount != 1 {
		return nil, nil, fmt.Errorf("exactly one main care plan is required, got %d", mainCount)
	}

	var roomCost int64
	var roomType *string
	if req.RoomTypeCode != "" {
		room, err := s.carePlanRepo.GetRoomTypeByCode(req.RoomTypeCode)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get room type: %w", err)
		}
		roomCost = room.MonthlyPrice
		roomType = &room.TypeCode
	}

	admissionDate := req.AdmissionDate
	resident := &models.Resident{
		DocumentID:    uuid.New().String(),
		FullName:      req.FullName,
		RoomNumber:    req.RoomNumber,
		DateOfBirth:   req.DateOfBirth,
		AdmissionDate: &admissionDate,
		Status:        "active",
	}
	if req.EmergencyContact != "" {
		resident.EmergencyContact = &req.EmergencyContact
	}

	if err := s.residentRepo.CreateResident(resident); err != nil {
		return nil, nil, fmt.Errorf("failed to create resident: %w", err)
	}

	assignment := &models.CarePlanAssignment{
		ResidentID:       resident.ID,
		SelectedRoomType: roomType,
		RoomCost:         roomCost,
		CarePlansCost:    carePlansCost,
		TotalCost:        carePlansCost + roomCost,
	}
	if err := s.carePlanRepo.CreateAssignmentWithPlans(assignment, req.CarePlanIDs); err != nil {
		return nil, nil, fmt.Errorf("failed to create care plan assignment: %w", err)
	}

	bill, err := s.billingService.CreateAdmissionInvoice(resident.ID, req.AdmissionDate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create admission invoice: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id": resident.ID,
		"bill_id":     bill.ID,
		"total_cost":  assignment.TotalCost,
	}).Info("Resident admitted")

	return resident, bill, nil
}
