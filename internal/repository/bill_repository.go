package repository

import (
	"time"

	"gorm.io/gorm"

	"carehome-be-svc/internal/models"
)

// BillFilter holds optional filters for bill listings
type BillFilter struct {
	ResidentID *uint
	Month      *int
	Year       *int
	UnpaidOnly bool
}

// BillRepository defines the interface for bill data operations
type BillRepository interface {
	GetBillByID(id uint) (*models.Bill, error)
	GetBillsWithFilters(filter BillFilter, page int, limit int) ([]*models.Bill, int64, error)
	GetBillsByResidentID(residentID uint) ([]*models.Bill, error)
	GetAllBillsWithFilters(filter BillFilter) ([]*models.Bill, error)
	GetUnpaidBills() ([]*models.Bill, error)
	GetItemsByBillIDs(billIDs []uint) ([]*models.BillItem, error)
	CreateBillWithItems(bill *models.Bill, items []*models.BillItem) error
	CreateBulkBills(bills []*models.Bill) error
	MarkBillsPaid(ids []uint, method string, paidAt time.Time) error
	ExistsForPeriod(residentID uint, month int, year int) (bool, error)
}

// billRepository implements BillRepository
type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new instance of BillRepository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{
		db: db,
	}
}

// GetBillByID retrieves a bill record by ID
func (r *billRepository) GetBillByID(id uint) (*models.Bill, error) {
	var bill models.Bill

	err := r.db.Where("id = ?", id).First(&bill).Error
	if err != nil {
		return nil, err
	}

	return &bill, nil
}

// GetBillsWithFilters retrieves bills with optional filters and pagination
func (r *billRepository) GetBillsWithFilters(filter BillFilter, page int, limit int) ([]*models.Bill, int64, error) {
	var bills []*models.Bill

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.Model(&models.Bill{})

	if filter.ResidentID != nil {
		query = query.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.Month != nil {
		query = query.Where("EXTRACT(MONTH FROM due_date) = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("EXTRACT(YEAR FROM due_date) = ?", *filter.Year)
	}
	if filter.UnpaidOnly {
		query = query.Where("paid_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("due_date DESC, id DESC").Limit(limit).Offset(offset).Find(&bills).Error
	if err != nil {
		return nil, 0, err
	}

	return bills, total, nil
}

// GetBillsByResidentID retrieves all bills for a resident ordered by due date
func (r *billRepository) GetBillsByResidentID(residentID uint) ([]*models.Bill, error) {
	var bills []*models.Bill

	err := r.db.Where("resident_id = ?", residentID).Order("due_date DESC").Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// GetAllBillsWithFilters retrieves every bill matching the filter, without
// pagination. Used by statistics and export.
func (r *billRepository) GetAllBillsWithFilters(filter BillFilter) ([]*models.Bill, error) {
	var bills []*models.Bill

	query := r.db.Model(&models.Bill{})

	if filter.ResidentID != nil {
		query = query.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.Month != nil {
		query = query.Where("EXTRACT(MONTH FROM due_date) = ?", *filter.Month)
	}
	if filter.Year != nil {
		query = query.Where("EXTRACT(YEAR FROM due_date) = ?", *filter.Year)
	}
	if filter.UnpaidOnly {
		query = query.Where("paid_at IS NULL")
	}

	err := query.Order("due_date DESC, id DESC").Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// GetUnpaidBills retrieves all bills without a paid date
func (r *billRepository) GetUnpaidBills() ([]*models.Bill, error) {
	var bills []*models.Bill

	err := r.db.Where("paid_at IS NULL").Order("due_date ASC").Find(&bills).Error
	if err != nil {
		return nil, err
	}

	return bills, nil
}

// GetItemsByBillIDs retrieves generic line items for a set of bills,
// preserving per-bill position order
func (r *billRepository) GetItemsByBillIDs(billIDs []uint) ([]*models.BillItem, error) {
	var items []*models.BillItem

	if len(billIDs) == 0 {
		return items, nil
	}

	err := r.db.Where("bill_id IN ?", billIDs).Order("bill_id, position ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// CreateBillWithItems creates a bill and its line items in a transaction
func (r *billRepository) CreateBillWithItems(bill *models.Bill, items []*models.BillItem) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		for _, item := range items {
			item.BillID = bill.ID
		}
		if len(items) > 0 {
			if err := tx.CreateInBatches(items, 100).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// CreateBulkBills creates multiple bill records in batches
func (r *billRepository) CreateBulkBills(bills []*models.Bill) error {
	return r.db.CreateInBatches(bills, 100).Error
}

// MarkBillsPaid sets paid date and payment method on the given bills
func (r *billRepository) MarkBillsPaid(ids []uint, method string, paidAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Bill{}).
			Where("id IN ? AND paid_at IS NULL", ids).
			Updates(map[string]interface{}{
				"paid_at":        paidAt,
				"payment_method": method,
			}).Error
	})
}

// ExistsForPeriod reports whether a resident already has a bill due in the
// given month and year
func (r *billRepository) ExistsForPeriod(residentID uint, month int, year int) (bool, error) {
	var count int64

	err := r.db.Model(&models.Bill{}).
		Where("resident_id = ? AND EXTRACT(MONTH FROM due_date) = ? AND EXTRACT(YEAR FROM due_date) = ?", residentID, month, year).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
