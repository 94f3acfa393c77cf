package repository

import (
	"gorm.io/gorm"

	"carehome-be-svc/internal/models"
)

// VisitRepository defines the interface for visit data operations
type VisitRepository interface {
	GetVisitByID(id uint) (*models.Visit, error)
	GetVisitsByResidentID(residentID uint, page int, limit int) ([]*models.Visit, int64, error)
	CreateVisit(visit *models.Visit) error
	UpdateVisitStatus(id uint, status string) error
}

// visitRepository implements VisitRepository
type visitRepository struct {
	db *gorm.DB
}

// NewVisitRepository creates a new instance of VisitRepository
func NewVisitRepository(db *gorm.DB) VisitRepository {
	return &visitRepository{
		db: db,
	}
}

// GetVisitByID retrieves a visit record by ID
func (r *visitRepository) GetVisitByID(id uint) (*models.Visit, error) {
	var visit models.Visit

	err := r.db.Where("id = ?", id).First(&visit).Error
	if err != nil {
		return nil, err
	}

	return &visit, nil
}

// GetVisitsByResidentID retrieves visits for a resident with pagination,
// newest first
func (r *visitRepository) GetVisitsByResidentID(residentID uint, page int, limit int) ([]*models.Visit, int64, error) {
	var visits []*models.Visit

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.Model(&models.Visit{}).Where("resident_id = ?", residentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("scheduled_at DESC").Limit(limit).Offset(offset).Find(&visits).Error
	if err != nil {
		return nil, 0, err
	}

	return visits, total, nil
}

// CreateVisit creates a new visit record
func (r *visitRepository) CreateVisit(visit *models.Visit) error {
	return r.db.Create(visit).Error
}

// UpdateVisitStatus updates a visit's status
func (r *visitRepository) UpdateVisitStatus(id uint, status string) error {
	return r.db.Model(&models.Visit{}).Where("id = ?", id).Update("status", status).Error
}
