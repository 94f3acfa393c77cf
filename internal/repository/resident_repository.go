package repository

import (
	"strconv"
	"strings"

	"gorm.io/gorm"

	"carehome-be-svc/internal/models"
)

// ResidentRepository defines the interface for resident data operations
type ResidentRepository interface {
	GetResidentByID(id uint) (*models.Resident, error)
	GetResidentsByIDs(ids []uint) ([]*models.Resident, error)
	GetActiveResidents() ([]*models.Resident, error)
	SearchResidents(search string, page int, limit int) ([]*models.Resident, int64, error)
	CreateResident(resident *models.Resident) error
	UpdateResident(resident *models.Resident) error
	DeleteResident(id uint) error
}

// residentRepository implements ResidentRepository
type residentRepository struct {
	db *gorm.DB
}

// NewResidentRepository creates a new instance of ResidentRepository
func NewResidentRepository(db *gorm.DB) ResidentRepository {
	return &residentRepository{
		db: db,
	}
}

// GetResidentByID retrieves a resident record by ID
func (r *residentRepository) GetResidentByID(id uint) (*models.Resident, error) {
	var resident models.Resident

	err := r.db.Where("id = ?", id).First(&resident).Error
	if err != nil {
		return nil, err
	}

	return &resident, nil
}

// GetResidentsByIDs retrieves resident records for a set of IDs
func (r *residentRepository) GetResidentsByIDs(ids []uint) ([]*models.Resident, error) {
	var residents []*models.Resident

	if len(ids) == 0 {
		return residents, nil
	}

	err := r.db.Where("id IN ?", ids).Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// GetActiveResidents retrieves all residents with status "active"
func (r *residentRepository) GetActiveResidents() ([]*models.Resident, error) {
	var residents []*models.Resident

	err := r.db.Where("status = ?", "active").Order("full_name ASC").Find(&residents).Error
	if err != nil {
		return nil, err
	}

	return residents, nil
}

// SearchResidents retrieves residents with pagination and optional search
// (by full name, or by id when the search term is numeric)
func (r *residentRepository) SearchResidents(search string, page int, limit int) ([]*models.Resident, int64, error) {
	var residents []*models.Resident

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.Model(&models.Resident{})

	if strings.TrimSpace(search) != "" {
		if id, err := strconv.Atoi(search); err == nil {
			query = query.Where("id = ? OR full_name ILIKE ?", id, "%"+search+"%")
		} else {
			query = query.Where("full_name ILIKE ?", "%"+search+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("full_name ASC").Limit(limit).Offset(offset).Find(&residents).Error
	if err != nil {
		return nil, 0, err
	}

	return residents, total, nil
}

// CreateResident creates a new resident record
func (r *residentRepository) CreateResident(resident *models.Resident) error {
	return r.db.Create(resident).Error
}

// UpdateResident saves changes to an existing resident record
func (r *residentRepository) UpdateResident(resident *models.Resident) error {
	return r.db.Save(resident).Error
}

// DeleteResident removes a resident record by ID
func (r *residentRepository) DeleteResident(id uint) error {
	return r.db.Delete(&models.Resident{}, id).Error
}
