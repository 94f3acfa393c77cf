package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"carehome-be-svc/internal/billing"
	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/models/response"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/pkg/logger"
)

// Day of the month regular bills fall due
const monthlyBillDueDay = 10

// BulkBillingResponse represents the result of bulk bill generation
type BulkBillingResponse struct {
	TotalResidents int      `json:"total_residents"`
	TotalBills     int      `json:"total_bills"`
	SuccessCount   int      `json:"success_count"`
	SkippedCount   int      `json:"skipped_count"`
	FailedCount    int      `json:"failed_count"`
	Errors         []string `json:"errors,omitempty"`
}

// BillingService defines the interface for billing business operations
type BillingService interface {
	GetEnhancedBill(id uint) (*billing.EnhancedBill, error)
	ListEnhancedBills(filter repository.BillFilter, page int, limit int) ([]billing.EnhancedBill, int64, error)
	GetEnhancedBillsByResident(residentID uint) ([]billing.EnhancedBill, error)
	PreviewFirstInvoice(admissionDate time.Time, monthlyTotal int64) billing.FirstInvoice
	CreateAdmissionInvoice(residentID uint, admissionDate time.Time) (*models.Bill, error)
	CreateMonthlyBills(month int, year int) (*BulkBillingResponse, error)
	ConfirmPayment(billIDs []uint, method string) error
	GetBillingStatistics(filter repository.BillFilter) (*response.BillingStatisticsResponse, error)
	ExportBillsToExcel(filter repository.BillFilter) ([]byte, string, error)
}

// billingService implements BillingService
type billingService struct {
	billRepo     repository.BillRepository
	residentRepo repository.ResidentRepository
	carePlanRepo repository.CarePlanRepository
	logger       *logger.Logger
	now          func() time.Time
}

// NewBillingService creates a new instance of BillingService
func NewBillingService(
	billRepo repository.BillRepository,
	residentRepo repository.ResidentRepository,
	carePlanRepo repository.CarePlanRepository,
	appLogger *logger.Logger,
) BillingService {
	return &billingService{
		billRepo:     billRepo,
		residentRepo: residentRepo,
		carePlanRepo: carePlanRepo,
		logger:       appLogger,
		now:          time.Now,
	}
}

// GetEnhancedBill retrieves a single bill with derived status and line items
func (s *billingService) GetEnhancedBill(id uint) (*billing.EnhancedBill, error) {
	bill, err := s.billRepo.GetBillByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	enriched, err := s.enrichBills([]*models.Bill{bill})
	if err != nil {
		return nil, err
	}

	return &enriched[0], nil
}

// ListEnhancedBills retrieves bills matching the filter, enriched for display
func (s *billingService) ListEnhancedBills(filter repository.BillFilter, page int, limit int) ([]billing.EnhancedBill, int64, error) {
	bills, total, err := s.billRepo.GetBillsWithFilters(filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bills: %w", err)
	}

	enriched, err := s.enrichBills(bills)
	if err != nil {
		return nil, 0, err
	}

	return enriched, total, nil
}

// GetEnhancedBillsByResident retrieves all of a resident's bills, enriched
func (s *billingService) GetEnhancedBillsByResident(residentID uint) ([]billing.EnhancedBill, error) {
	bills, err := s.billRepo.GetBillsByResidentID(residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resident bills: %w", err)
	}

	return s.enrichBills(bills)
}

// enrichBills pre-fetches every related record the computation needs, then
// runs the pure enrichment over in-memory lookup tables. All I/O happens
// here; billing.Enrich itself never touches storage.
func (s *billingService) enrichBills(bills []*models.Bill) ([]billing.EnhancedBill, error) {
	lookups, err := s.buildLookups(bills)
	if err != nil {
		return nil, err
	}

	items, err := s.fetchBillItems(bills)
	if err != nil {
		return nil, err
	}

	enriched := make([]billing.EnhancedBill, 0, len(bills))
	for _, bill := range bills {
		raw := toRawBill(bill, items[bill.ID])
		result := billing.Enrich(raw, lookups)
		if result.DuplicateMainPlan {
			s.logger.WithField("bill_id", bill.ID).Warn("Assignment carries more than one main care plan, first match used")
		}
		enriched = append(enriched, result)
	}

	return enriched, nil
}

// buildLookups assembles the in-memory lookup tables for a batch of bills
func (s *billingService) buildLookups(bills []*models.Bill) (billing.Lookups, error) {
	assignments := make(map[uint]billing.Assignment)
	planIDSet := make(map[uint]bool)
	residentIDSet := make(map[uint]bool)

	for _, bill := range bills {
		residentIDSet[bill.ResidentID] = true
		if bill.AssignmentID == nil {
			continue
		}
		if _, done := assignments[*bill.AssignmentID]; done {
			continue
		}

		assignment, err := s.carePlanRepo.GetAssignmentByID(*bill.AssignmentID)
		if err != nil {
			// deleted assignments are normal on this read path
			continue
		}
		planIDs, err := s.carePlanRepo.GetAssignmentPlanIDs(assignment.ID)
		if err != nil {
			return billing.Lookups{}, fmt.Errorf("failed to get assignment plan links: %w", err)
		}

		roomType := ""
		if assignment.SelectedRoomType != nil {
			roomType = *assignment.SelectedRoomType
		}
		assignments[assignment.ID] = billing.Assignment{
			ResidentID:       assignment.ResidentID,
			CarePlanIDs:      planIDs,
			SelectedRoomType: roomType,
		}
		for _, id := range planIDs {
			planIDSet[id] = true
		}
	}

	plans := make(map[uint]billing.CarePlan)
	planIDs := make([]uint, 0, len(planIDSet))
	for id := range planIDSet {
		planIDs = append(planIDs, id)
	}
	planRecords, err := s.carePlanRepo.GetCarePlansByIDs(planIDs)
	if err != nil {
		return billing.Lookups{}, fmt.Errorf("failed to get care plans: %w", err)
	}
	for _, plan := range planRecords {
		plans[plan.ID] = billing.CarePlan{
			ID:           plan.ID,
			PlanName:     plan.PlanName,
			MonthlyPrice: plan.MonthlyPrice,
			Category:     plan.Category,
			Description:  plan.Description,
		}
	}

	rooms := make(map[string]billing.Room)
	roomRecords, err := s.carePlanRepo.GetAllRoomTypes()
	if err != nil {
		return billing.Lookups{}, fmt.Errorf("failed to get room types: %w", err)
	}
	for _, room := range roomRecords {
		rooms[room.TypeCode] = billing.Room{
			TypeCode:     room.TypeCode,
			TypeName:     room.TypeName,
			MonthlyPrice: room.MonthlyPrice,
			Description:  room.Description,
		}
	}

	residents := make(map[uint]billing.ResidentInfo)
	residentIDs := make([]uint, 0, len(residentIDSet))
	for id := range residentIDSet {
		residentIDs = append(residentIDs, id)
	}
	residentRecords, err := s.residentRepo.GetResidentsByIDs(residentIDs)
	if err != nil {
		return billing.Lookups{}, fmt.Errorf("failed to get residents: %w", err)
	}
	for _, resident := range residentRecords {
		residents[resident.ID] = billing.ResidentInfo{
			ID:         resident.ID,
			FullName:   resident.FullName,
			RoomNumber: resident.RoomNumber,
		}
	}

	// secondary tier: room label recovered from the resident's assignment
	// when the directory record has no room number
	assignmentRooms := make(map[uint]billing.ResidentInfo)
	for _, assignment := range assignments {
		if assignment.SelectedRoomType == "" {
			continue
		}
		if room, ok := rooms[assignment.SelectedRoomType]; ok {
			assignmentRooms[assignment.ResidentID] = billing.ResidentInfo{
				ID:         assignment.ResidentID,
				RoomNumber: room.TypeName,
			}
		}
	}

	return billing.Lookups{
		AssignmentByID: func(id uint) (billing.Assignment, bool) {
			a, ok := assignments[id]
			return a, ok
		},
		PlanByID: func(id uint) (billing.CarePlan, bool) {
			p, ok := plans[id]
			return p, ok
		},
		RoomByCode: func(code string) (billing.Room, bool) {
			r, ok := rooms[code]
			return r, ok
		},
		ResidentResolvers: []billing.ResidentResolver{
			func(id uint) (billing.ResidentInfo, bool) {
				info, ok := residents[id]
				return info, ok
			},
			func(id uint) (billing.ResidentInfo, bool) {
				info, ok := assignmentRooms[id]
				return info, ok
			},
		},
		Now: s.now(),
	}, nil
}

// fetchBillItems loads persisted generic line items grouped by bill id
func (s *billingService) fetchBillItems(bills []*models.Bill) (map[uint][]billing.RawItem, error) {
	billIDs := make([]uint, 0, len(bills))
	for _, bill := range bills {
		billIDs = append(billIDs, bill.ID)
	}

	records, err := s.billRepo.GetItemsByBillIDs(billIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get bill items: %w", err)
	}

	grouped := make(map[uint][]billing.RawItem)
	for _, record := range records {
		itemID := ""
		if record.ItemID != nil {
			itemID = *record.ItemID
		}
		grouped[record.BillID] = append(grouped[record.BillID], billing.RawItem{
			ID:          itemID,
			Name:        record.Name,
			Amount:      record.Amount,
			Category:    record.Category,
			Description: record.Description,
		})
	}

	return grouped, nil
}

// toRawBill maps a stored bill to the computation package's input shape
func toRawBill(bill *models.Bill, items []billing.RawItem) billing.RawBill {
	paymentMethod := ""
	if bill.PaymentMethod != nil {
		paymentMethod = *bill.PaymentMethod
	}
	notes := ""
	if bill.Notes != nil {
		notes = *bill.Notes
	}

	return billing.RawBill{
		ID:            bill.ID,
		ResidentID:    bill.ResidentID,
		AssignmentID:  bill.AssignmentID,
		Amount:        bill.Amount,
		DueDate:       bill.DueDate,
		CreatedAt:     bill.CreatedAt,
		PaidAt:        bill.PaidAt,
		PaymentMethod: paymentMethod,
		Notes:         notes,
		Items:         items,
	}
}

// PreviewFirstInvoice computes proration figures without persisting anything
func (s *billingService) PreviewFirstInvoice(admissionDate time.Time, monthlyTotal int64) billing.FirstInvoice {
	return billing.ComputeFirstInvoice(admissionDate, monthlyTotal)
}

// CreateAdmissionInvoice creates the prorated first bill for a newly admitted
// resident: partial month from the admission day plus a one-month deposit,
// due at the close of the admission day.
func (s *billingService) CreateAdmissionInvoice(residentID uint, admissionDate time.Time) (*models.Bill, error) {
	assignment, err := s.carePlanRepo.GetAssignmentByResidentID(residentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get resident assignment: %w", err)
	}

	invoice := billing.ComputeFirstInvoice(admissionDate, assignment.TotalCost)

	docID := "admission-" + uuid.New().String()
	notes := fmt.Sprintf("First invoice: %d prorated days plus one-month deposit", invoice.RemainingDays)
	bill := &models.Bill{
		DocumentID:   &docID,
		ResidentID:   residentID,
		AssignmentID: &assignment.ID,
		Amount:       invoice.TotalAmount,
		DueDate:      invoice.DueDate,
		Notes:        &notes,
	}

	partialID := "partial_month"
	depositID := "deposit"
	items := []*models.BillItem{
		{
			ItemID:      &partialID,
			Name:        fmt.Sprintf("Partial month (%d of %d days)", invoice.RemainingDays, invoice.DaysInMonth),
			Amount:      invoice.PartialMonthAmount,
			Category:    "proration",
			Description: fmt.Sprintf("Prorated charge from %s", admissionDate.Format("2006-01-02")),
			Position:    0,
		},
		{
			ItemID:      &depositID,
			Name:        "Deposit (one month)",
			Amount:      invoice.DepositAmount,
			Category:    "deposit",
			Description: "Refundable one-month deposit",
			Position:    1,
		},
	}

	if err := s.billRepo.CreateBillWithItems(bill, items); err != nil {
		return nil, fmt.Errorf("failed to create admission invoice: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"resident_id":    residentID,
		"bill_id":        bill.ID,
		"partial_amount": invoice.PartialMonthAmount,
		"deposit":        invoice.DepositAmount,
		"total":          invoice.TotalAmount,
	}).Info("Admission invoice created")

	return bill, nil
}

// CreateMonthlyBills creates a regular monthly bill for every active resident
// with a care plan assignment, skipping residents already billed for the
// period.
func (s *billingService) CreateMonthlyBills(month int, year int) (*BulkBillingResponse, error) {
	residents, err := s.residentRepo.GetActiveResidents()
	if err != nil {
		return nil, fmt.Errorf("failed to get active residents: %w", err)
	}

	result := &BulkBillingResponse{
		TotalResidents: len(residents),
	}

	dueDate := time.Date(year, time.Month(month), monthlyBillDueDay, 0, 0, 0, 0, time.Local)

	var bills []*models.Bill
	for _, resident := range residents {
		assignment, err := s.carePlanRepo.GetAssignmentByResidentID(resident.ID)
		if err != nil {
			// residents without an assignment are not billed
			result.SkippedCount++
			continue
		}

		exists, err := s.billRepo.ExistsForPeriod(resident.ID, month, year)
		if err != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("resident %d: %v", resident.ID, err))
			continue
		}
		if exists {
			result.SkippedCount++
			continue
		}

		docID := "monthly-" + uuid.New().String()
		notes := fmt.Sprintf("Monthly bill %02d/%d", month, year)
		bills = append(bills, &models.Bill{
			DocumentID:   &docID,
			ResidentID:   resident.ID,
			AssignmentID: &assignment.ID,
			Amount:       assignment.TotalCost,
			DueDate:      dueDate,
			Notes:        &notes,
		})
	}

	result.TotalBills = len(bills)
	if len(bills) == 0 {
		return result, nil
	}

	if err := s.billRepo.CreateBulkBills(bills); err != nil {
		result.FailedCount += len(bills)
		result.Errors = append(result.Errors, err.Error())
		return result, nil
	}
	result.SuccessCount = len(bills)

	s.logger.WithFields(map[string]interface{}{
		"month":         month,
		"year":          year,
		"total_bills":   result.TotalBills,
		"success_count": result.SuccessCount,
		"skipped_count": result.SkippedCount,
	}).Info("Monthly bills created")

	return result, nil
}

// ConfirmPayment marks the given bills as paid with the supplied method
func (s *billingService) ConfirmPayment(billIDs []uint, method string) error {
	if len(billIDs) == 0 {
		return fmt.Errorf("no bill ids provided")
	}

	if err := s.billRepo.MarkBillsPaid(billIDs, method, s.now()); err != nil {
		return fmt.Errorf("failed to confirm payment: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"bill_ids": billIDs,
		"method":   method,
	}).Info("Payments confirmed")

	return nil
}

// GetBillingStatistics aggregates paid/pending/overdue counts and totals over
// the bills matching the filter
func (s *billingService) GetBillingStatistics(filter repository.BillFilter) (*response.BillingStatisticsResponse, error) {
	bills, err := s.billRepo.GetAllBillsWithFilters(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get bills for statistics: %w", err)
	}

	now := s.now()
	stats := &response.BillingStatisticsResponse{
		TotalBills: int64(len(bills)),
	}

	for _, bill := range bills {
		stats.TotalAmount += bill.Amount
		switch billing.DeriveStatus(bill.PaidAt, bill.DueDate, now) {
		case billing.StatusPaid:
			stats.TotalPaid++
		case billing.StatusPending:
			stats.TotalPending++
			stats.UnpaidAmount += bill.Amount
		case billing.StatusOverdue:
			stats.TotalOverdue++
			stats.UnpaidAmount += bill.Amount
			stats.OverdueAmount += bill.Amount
		}
	}

	return stats, nil
}

// ExportBillsToExcel exports bills matching the filter to an xlsx file
func (s *billingService) ExportBillsToExcel(filter repository.BillFilter) ([]byte, string, error) {
	bills, err := s.billRepo.GetAllBillsWithFilters(filter)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get bills for export: %w", err)
	}

	enriched, err := s.enrichBills(bills)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Error("Failed to close Excel file")
		}
	}()

	sheetName := "Bills"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"No", "Resident", "Room", "Amount", "Due Date", "Status", "Paid At", "Payment Method", "Notes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A1", "I1", headerStyle)
	}

	for i, bill := range enriched {
		row := i + 2
		paidAt := ""
		if bill.PaidAt != nil {
			paidAt = bill.PaidAt.Format("2006-01-02")
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), bill.ResidentName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), bill.RoomNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), bill.Amount)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), bill.DueDate.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), string(bill.Status))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), paidAt)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), bill.PaymentMethod)
		f.SetCellValue(sheetName, fmt.Sprintf("I%d", row), bill.Notes)
	}

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	timestamp := s.now().Format("20060102_150405")
	filename := fmt.Sprintf("bills_export_%s.xlsx", timestamp)

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	return buffer.Bytes(), filename, nil
}
