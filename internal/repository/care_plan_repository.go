package repository

import (
	"gorm.io/gorm"

	"carehome-be-svc/internal/models"
)

// CarePlanRepository defines the interface for care plan, assignment and
// room type data operations
type CarePlanRepository interface {
	GetCarePlanByID(id uint) (*models.CarePlan, error)
	GetCarePlansByIDs(ids []uint) ([]*models.CarePlan, error)
	GetAllCarePlans() ([]*models.CarePlan, error)
	GetAssignmentByID(id uint) (*models.CarePlanAssignment, error)
	GetAssignmentByResidentID(residentID uint) (*models.CarePlanAssignment, error)
	GetAssignmentPlanIDs(assignmentID uint) ([]uint, error)
	CreateAssignmentWithPlans(assignment *models.CarePlanAssignment, planIDs []uint) error
	GetRoomTypeByCode(code string) (*models.RoomType, error)
	GetAllRoomTypes() ([]*models.RoomType, error)
}

// carePlanRepository implements CarePlanRepository
type carePlanRepository struct {
	db *gorm.DB
}

// NewCarePlanRepository creates a new instance of CarePlanRepository
func NewCarePlanRepository(db *gorm.DB) CarePlanRepository {
	return &carePlanRepository{
		db: db,
	}
}

// GetCarePlanByID retrieves a care plan by ID
func (r *carePlanRepository) GetCarePlanByID(id uint) (*models.CarePlan, error) {
	var plan models.CarePlan

	err := r.db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		return nil, err
	}

	return &plan, nil
}

// GetCarePlansByIDs retrieves care plans for a set of IDs
func (r *carePlanRepository) GetCarePlansByIDs(ids []uint) ([]*models.CarePlan, error) {
	var plans []*models.CarePlan

	if len(ids) == 0 {
		return plans, nil
	}

	err := r.db.Where("id IN ?", ids).Find(&plans).Error
	if err != nil {
		return nil, err
	}

	return plans, nil
}

// GetAllCarePlans retrieves all active care plans
func (r *carePlanRepository) GetAllCarePlans() ([]*models.CarePlan, error) {
	var plans []*models.CarePlan

	err := r.db.Where("is_active IS NULL OR is_active = ?", true).Order("category, plan_name").Find(&plans).Error
	if err != nil {
		return nil, err
	}

	return plans, nil
}

// GetAssignmentByID retrieves a care plan assignment by ID
func (r *carePlanRepository) GetAssignmentByID(id uint) (*models.CarePlanAssignment, error) {
	var assignment models.CarePlanAssignment

	err := r.db.Where("id = ?", id).First(&assignment).Error
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// GetAssignmentByResidentID retrieves the most recent assignment for a resident
func (r *carePlanRepository) GetAssignmentByResidentID(residentID uint) (*models.CarePlanAssignment, error) {
	var assignment models.CarePlanAssignment

	err := r.db.Where("resident_id = ?", residentID).Order("id DESC").First(&assignment).Error
	if err != nil {
		return nil, err
	}

	return &assignment, nil
}

// GetAssignmentPlanIDs retrieves the care plan IDs linked to an assignment,
// in attachment order
func (r *carePlanRepository) GetAssignmentPlanIDs(assignmentID uint) ([]uint, error) {
	var links []*models.AssignmentPlanLink

	err := r.db.Where("assignment_id = ?", assignmentID).Order("position ASC").Find(&links).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(links))
	for _, link := range links {
		ids = append(ids, link.CarePlanID)
	}

	return ids, nil
}

// CreateAssignmentWithPlans creates an assignment and its plan links in a
// transaction
func (r *carePlanRepository) CreateAssignmentWithPlans(assignment *models.CarePlanAssignment, planIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(assignment).Error; err != nil {
			return err
		}

		links := make([]*models.AssignmentPlanLink, 0, len(planIDs))
		for i, planID := range planIDs {
			links = append(links, &models.AssignmentPlanLink{
				AssignmentID: assignment.ID,
				CarePlanID:   planID,
				Position:     i,
			})
		}
		if len(links) > 0 {
			if err := tx.CreateInBatches(links, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetRoomTypeByCode retrieves a room type by its type code
func (r *carePlanRepository) GetRoomTypeByCode(code string) (*models.RoomType, error) {
	var roomType models.RoomType

	err := r.db.Where("type_code = ?", code).First(&roomType).Error
	if err != nil {
		return nil, err
	}

	return &roomType, nil
}

// GetAllRoomTypes retrieves all room types
func (r *carePlanRepository) GetAllRoomTypes() ([]*models.RoomType, error) {
	var roomTypes []*models.RoomType

	err := r.db.Order("monthly_price ASC").Find(&roomTypes).Error
	if err != nil {
		return nil, err
	}

	return roomTypes, nil
}
