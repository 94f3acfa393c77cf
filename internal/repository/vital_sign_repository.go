package repository

import (
	"gorm.io/gorm"

	"carehome-be-svc/internal/models"
)

// VitalSignRepository defines the interface for vital sign data operations
type VitalSignRepository interface {
	GetVitalSignsByResidentID(residentID uint, page int, limit int) ([]*models.VitalSign, int64, error)
	GetLatestVitalSign(residentID uint) (*models.VitalSign, error)
	CreateVitalSign(vitalSign *models.VitalSign) error
}

// vitalSignRepository implements VitalSignRepository
type vitalSignRepository struct {
	db *gorm.DB
}

// NewVitalSignRepository creates a new instance of VitalSignRepository
func NewVitalSignRepository(db *gorm.DB) VitalSignRepository {
	return &vitalSignRepository{
		db: db,
	}
}

// GetVitalSignsByResidentID retrieves vital signs for a resident with
// pagination, newest first
func (r *vitalSignRepository) GetVitalSignsByResidentID(residentID uint, page int, limit int) ([]*models.VitalSign, int64, error) {
	var vitals []*models.VitalSign

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.Model(&models.VitalSign{}).Where("resident_id = ?", residentID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("measured_at DESC").Limit(limit).Offset(offset).Find(&vitals).Error
	if err != nil {
		return nil, 0, err
	}

	return vitals, total, nil
}

// GetLatestVitalSign retrieves the most recent vital sign for a resident
func (r *vitalSignRepository) GetLatestVitalSign(residentID uint) (*models.VitalSign, error) {
	var vital models.VitalSign

	err := r.db.Where("resident_id = ?", residentID).Order("measured_at DESC").First(&vital).Error
	if err != nil {
		return nil, err
	}

	return &vital, nil
}

// CreateVitalSign creates a new vital sign record
func (r *vitalSignRepository) CreateVitalSign(vitalSign *models.VitalSign) error {
	return r.db.Create(vitalSign).Error
}
