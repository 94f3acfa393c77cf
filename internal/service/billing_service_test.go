package service

import (
	"fmt"
	"testing"
	"time"

	"carehome-be-svc/internal/billing"
	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/pkg/logger"
)

// fakeBillRepo is an in-memory BillRepository for service tests
type fakeBillRepo struct {
	bills        map[uint]*models.Bill
	items        map[uint][]*models.BillItem
	billedPeriod map[string]bool
	created      []*models.Bill
	paidIDs      []uint
	paidMethod   string
	paidAt       time.Time
}

func newFakeBillRepo() *fakeBillRepo {
	return &fakeBillRepo{
		bills:        make(map[uint]*models.Bill),
		items:        make(map[uint][]*models.BillItem),
		billedPeriod: make(map[string]bool),
	}
}

func (f *fakeBillRepo) GetBillByID(id uint) (*models.Bill, error) {
	bill, ok := f.bills[id]
	if !ok {
		return nil, fmt.Errorf("bill %d not found", id)
	}
	return bill, nil
}

func (f *fakeBillRepo) GetBillsWithFilters(filter repository.BillFilter, page int, limit int) ([]*models.Bill, int64, error) {
	bills, err := f.GetAllBillsWithFilters(filter)
	return bills, int64(len(bills)), err
}

func (f *fakeBillRepo) GetBillsByResidentID(residentID uint) ([]*models.Bill, error) {
	var out []*models.Bill
	for _, bill := range f.bills {
		if bill.ResidentID == residentID {
			out = append(out, bill)
		}
	}
	return out, nil
}

func (f *fakeBillRepo) GetAllBillsWithFilters(filter repository.BillFilter) ([]*models.Bill, error) {
	var out []*models.Bill
	for _, bill := range f.bills {
		if filter.ResidentID != nil && bill.ResidentID != *filter.ResidentID {
			continue
		}
		if filter.UnpaidOnly && bill.PaidAt != nil {
			continue
		}
		out = append(out, bill)
	}
	return out, nil
}

func (f *fakeBillRepo) GetUnpaidBills() ([]*models.Bill, error) {
	return f.GetAllBillsWithFilters(repository.BillFilter{UnpaidOnly: true})
}

func (f *fakeBillRepo) GetItemsByBillIDs(billIDs []uint) ([]*models.BillItem, error) {
	var out []*models.BillItem
	for _, id := range billIDs {
		out = append(out, f.items[id]...)
	}
	return out, nil
}

func (f *fakeBillRepo) CreateBillWithItems(bill *models.Bill, items []*models.BillItem) error {
	bill.ID = uint(len(f.bills) + 1)
	f.bills[bill.ID] = bill
	f.items[bill.ID] = items
	f.created = append(f.created, bill)
	return nil
}

func (f *fakeBillRepo) CreateBulkBills(bills []*models.Bill) error {
	for _, bill := range bills {
		bill.ID = uint(len(f.bills) + 1)
		f.bills[bill.ID] = bill
		f.created = append(f.created, bill)
	}
	return nil
}

func (f *fakeBillRepo) MarkBillsPaid(ids []uint, method string, paidAt time.Time) error {
	f.paidIDs = ids
	f.paidMethod = method
	f.paidAt = paidAt
	for _, id := range ids {
		if bill, ok := f.bills[id]; ok && bill.PaidAt == nil {
			t := paidAt
			bill.PaidAt = &t
			m := method
			bill.PaymentMethod = &m
		}
	}
	return nil
}

func (f *fakeBillRepo) ExistsForPeriod(residentID uint, month int, year int) (bool, error) {
	return f.billedPeriod[fmt.Sprintf("%d-%02d-%d", residentID, month, year)], nil
}

// fakeResidentRepo is an in-memory ResidentRepository for service tests
type fakeResidentRepo struct {
	residents map[uint]*models.Resident
}

func newFakeResidentRepo() *fakeResidentRepo {
	return &fakeResidentRepo{residents: make(map[uint]*models.Resident)}
}

func (f *fakeResidentRepo) GetResidentByID(id uint) (*models.Resident, error) {
	resident, ok := f.residents[id]
	if !ok {
		return nil, fmt.Errorf("resident %d not found", id)
	}
	return resident, nil
}

func (f *fakeResidentRepo) GetResidentsByIDs(ids []uint) ([]*models.Resident, error) {
	var out []*models.Resident
	for _, id := range ids {
		if resident, ok := f.residents[id]; ok {
			out = append(out, resident)
		}
	}
	return out, nil
}

func (f *fakeResidentRepo) GetActiveResidents() ([]*models.Resident, error) {
	var out []*models.Resident
	for id := uint(1); id <= uint(len(f.residents)+10); id++ {
		if resident, ok := f.residents[id]; ok && resident.Status == "active" {
			out = append(out, resident)
		}
	}
	return out, nil
}

func (f *fakeResidentRepo) SearchResidents(search string, page int, limit int) ([]*models.Resident, int64, error) {
	return nil, 0, nil
}

func (f *fakeResidentRepo) CreateResident(resident *models.Resident) error {
	resident.ID = uint(len(f.residents) + 1)
	f.residents[resident.ID] = resident
	return nil
}

func (f *fakeResidentRepo) UpdateResident(resident *models.Resident) error {
	f.residents[resident.ID] = resident
	return nil
}

func (f *fakeResidentRepo) DeleteResident(id uint) error {
	delete(f.residents, id)
	return nil
}

// fakeCarePlanRepo is an in-memory CarePlanRepository for service tests
type fakeCarePlanRepo struct {
	plans       map[uint]*models.CarePlan
	assignments map[uint]*models.CarePlanAssignment
	planLinks   map[uint][]uint
	rooms       map[string]*models.RoomType
}

func newFakeCarePlanRepo() *fakeCarePlanRepo {
	return &fakeCarePlanRepo{
		plans:       make(map[uint]*models.CarePlan),
		assignments: make(map[uint]*models.CarePlanAssignment),
		planLinks:   make(map[uint][]uint),
		rooms:       make(map[string]*models.RoomType),
	}
}

func (f *fakeCarePlanRepo) GetCarePlanByID(id uint) (*models.CarePlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, fmt.Errorf("care plan %d not found", id)
	}
	return plan, nil
}

func (f *fakeCarePlanRepo) GetCarePlansByIDs(ids []uint) ([]*models.CarePlan, error) {
	var out []*models.CarePlan
	for _, id := range ids {
		if plan, ok := f.plans[id]; ok {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (f *fakeCarePlanRepo) GetAllCarePlans() ([]*models.CarePlan, error) {
	var out []*models.CarePlan
	for _, plan := range f.plans {
		out = append(out, plan)
	}
	return out, nil
}

func (f *fakeCarePlanRepo) GetAssignmentByID(id uint) (*models.CarePlanAssignment, error) {
	assignment, ok := f.assignments[id]
	if !ok {
		return nil, fmt.Errorf("assignment %d not found", id)
	}
	return assignment, nil
}

func (f *fakeCarePlanRepo) GetAssignmentByResidentID(residentID uint) (*models.CarePlanAssignment, error) {
	for _, assignment := range f.assignments {
		if assignment.ResidentID == residentID {
			return assignment, nil
		}
	}
	return nil, fmt.Errorf("no assignment for resident %d", residentID)
}

func (f *fakeCarePlanRepo) GetAssignmentPlanIDs(assignmentID uint) ([]uint, error) {
	return f.planLinks[assignmentID], nil
}

func (f *fakeCarePlanRepo) CreateAssignmentWithPlans(assignment *models.CarePlanAssignment, planIDs []uint) error {
	assignment.ID = uint(len(f.assignments) + 1)
	f.assignments[assignment.ID] = assignment
	f.planLinks[assignment.ID] = planIDs
	return nil
}

func (f *fakeCarePlanRepo) GetRoomTypeByCode(code string) (*models.RoomType, error) {
	room, ok := f.rooms[code]
	if !ok {
		return nil, fmt.Errorf("room type %s not found", code)
	}
	return room, nil
}

func (f *fakeCarePlanRepo) GetAllRoomTypes() ([]*models.RoomType, error) {
	var out []*models.RoomType
	for _, room := range f.rooms {
		out = append(out, room)
	}
	return out, nil
}

func testLogger() *logger.Logger {
	return logger.NewLogger("error", "text")
}

func strPtr(s string) *string { return &s }

// newTestBillingService builds a billingService over populated fakes with a
// fixed clock
func newTestBillingService(now time.Time) (*billingService, *fakeBillRepo, *fakeResidentRepo, *fakeCarePlanRepo) {
	billRepo := newFakeBillRepo()
	residentRepo := newFakeResidentRepo()
	carePlanRepo := newFakeCarePlanRepo()

	svc := &billingService{
		billRepo:     billRepo,
		residentRepo: residentRepo,
		carePlanRepo: carePlanRepo,
		logger:       testLogger(),
		now:          func() time.Time { return now },
	}
	return svc, billRepo, residentRepo, carePlanRepo
}

func seedCatalog(carePlanRepo *fakeCarePlanRepo) {
	carePlanRepo.plans[1] = &models.CarePlan{ID: 1, PlanName: "Full Nursing Care", Category: models.PlanCategoryMain, MonthlyPrice: 5000000}
	carePlanRepo.plans[2] = &models.CarePlan{ID: 2, PlanName: "Physiotherapy", Category: models.PlanCategorySupplementary, MonthlyPrice: 1500000}
	carePlanRepo.rooms["single"] = &models.RoomType{ID: 1, TypeCode: "single", TypeName: "Single Room", MonthlyPrice: 3000000}
}

func TestGetEnhancedBill(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc, billRepo, residentRepo, carePlanRepo := newTestBillingService(now)

	seedCatalog(carePlanRepo)
	residentRepo.residents[7] = &models.Resident{ID: 7, FullName: "Siti Rahma", RoomNumber: "A-12", Status: "active"}
	carePlanRepo.assignments[3] = &models.CarePlanAssignment{
		ID:               3,
		ResidentID:       7,
		SelectedRoomType: strPtr("single"),
		RoomCost:         3000000,
		CarePlansCost:    6500000,
		TotalCost:        9500000,
	}
	carePlanRepo.planLinks[3] = []uint{1, 2}

	assignmentID := uint(3)
	billRepo.bills[100] = &models.Bill{
		ID:           100,
		ResidentID:   7,
		AssignmentID: &assignmentID,
		Amount:       9500000,
		DueDate:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	bill, err := svc.GetEnhancedBill(100)
	if err != nil {
		t.Fatalf("GetEnhancedBill returned error: %v", err)
	}

	if bill.ResidentName != "Siti Rahma" {
		t.Errorf("ResidentName = %q, want %q", bill.ResidentName, "Siti Rahma")
	}
	if bill.RoomNumber != "A-12" {
		t.Errorf("RoomNumber = %q, want %q", bill.RoomNumber, "A-12")
	}
	if bill.Status != billing.StatusOverdue {
		t.Errorf("Status = %q, want %q", bill.Status, billing.StatusOverdue)
	}

	if len(bill.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(bill.Items))
	}
	wantIDs := []string{"main_1", "supp_2", "room_single"}
	var sum int64
	for i, item := range bill.Items {
		if item.ID != wantIDs[i] {
			t.Errorf("Items[%d].ID = %q, want %q", i, item.ID, wantIDs[i])
		}
		sum += item.Amount
	}
	if sum != bill.Amount {
		t.Errorf("item sum = %d, want bill amount %d", sum, bill.Amount)
	}
}

func TestGetEnhancedBillResidentFallback(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	svc, billRepo, _, _ := newTestBillingService(now)

	// no resident record, no assignment: every resolver tier misses
	billRepo.bills[5] = &models.Bill{
		ID:         5,
		ResidentID: 99,
		Amount:     250000,
		DueDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	laundry := "laundry"
	billRepo.items[5] = []*models.BillItem{
		{BillID: 5, ItemID: &laundry, Name: "Laundry service", Amount: 250000, Category: "service"},
	}

	bill, err := svc.GetEnhancedBill(5)
	if err != nil {
		t.Fatalf("GetEnhancedBill returned error: %v", err)
	}

	if bill.ResidentName != billing.UnknownLabel {
		t.Errorf("ResidentName = %q, want %q", bill.ResidentName, billing.UnknownLabel)
	}
	if bill.RoomNumber != billing.UnknownLabel {
		t.Errorf("RoomNumber = %q, want %q", bill.RoomNumber, billing.UnknownLabel)
	}
	if bill.Status != billing.StatusPending {
		t.Errorf("Status = %q, want %q", bill.Status, billing.StatusPending)
	}
	if len(bill.Items) != 1 || bill.Items[0].ID != "laundry" {
		t.Errorf("Items = %+v, want single laundry item", bill.Items)
	}
}

func TestCreateAdmissionInvoice(t *testing.T) {
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	svc, billRepo, residentRepo, carePlanRepo := newTestBillingService(now)

	seedCatalog(carePlanRepo)
	residentRepo.residents[1] = &models.Resident{ID: 1, FullName: "Budi Santoso", Status: "active"}
	carePlanRepo.assignments[1] = &models.CarePlanAssignment{ID: 1, ResidentID: 1, TotalCost: 2900000}
	carePlanRepo.planLinks[1] = []uint{1}

	admission := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	bill, err := svc.CreateAdmissionInvoice(1, admission)
	if err != nil {
		t.Fatalf("CreateAdmissionInvoice returned error: %v", err)
	}

	// full leap-year February: partial equals the monthly total
	wantTotal := int64(2900000 + 2900000)
	if bill.Amount != wantTotal {
		t.Errorf("Amount = %d, want %d", bill.Amount, wantTotal)
	}

	wantDue := time.Date(2024, 2, 1, 23, 59, 0, 0, time.UTC)
	if !bill.DueDate.Equal(wantDue) {
		t.Errorf("DueDate = %v, want %v", bill.DueDate, wantDue)
	}

	items := billRepo.items[bill.ID]
	if len(items) != 2 {
		t.Fatalf("len(items) = %d, want 2", len(items))
	}
	if items[0].ItemID == nil || *items[0].ItemID != "partial_month" {
		t.Errorf("items[0].ItemID = %v, want partial_month", items[0].ItemID)
	}
	if items[1].ItemID == nil || *items[1].ItemID != "deposit" {
		t.Errorf("items[1].ItemID = %v, want deposit", items[1].ItemID)
	}
	if items[0].Amount+items[1].Amount != bill.Amount {
		t.Errorf("item amounts %d + %d do not sum to bill amount %d", items[0].Amount, items[1].Amount, bill.Amount)
	}
}

func TestCreateMonthlyBills(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc, billRepo, residentRepo, carePlanRepo := newTestBillingService(now)

	seedCatalog(carePlanRepo)
	residentRepo.residents[1] = &models.Resident{ID: 1, FullName: "Budi Santoso", Status: "active"}
	residentRepo.residents[2] = &models.Resident{ID: 2, FullName: "Siti Rahma", Status: "active"}
	residentRepo.residents[3] = &models.Resident{ID: 3, FullName: "Agus Wijaya", Status: "active"}
	residentRepo.residents[4] = &models.Resident{ID: 4, FullName: "Dewi Lestari", Status: "discharged"}

	carePlanRepo.assignments[1] = &models.CarePlanAssignment{ID: 1, ResidentID: 1, TotalCost: 8000000}
	carePlanRepo.assignments[2] = &models.CarePlanAssignment{ID: 2, ResidentID: 2, TotalCost: 9500000}
	// resident 3 has no assignment

	// resident 2 already billed for the period
	billRepo.billedPeriod["2-05-2026"] = true

	result, err := svc.CreateMonthlyBills(5, 2026)
	if err != nil {
		t.Fatalf("CreateMonthlyBills returned error: %v", err)
	}

	if result.TotalResidents != 3 {
		t.Errorf("TotalResidents = %d, want 3", result.TotalResidents)
	}
	if result.SuccessCount != 1 {
		t.Errorf("SuccessCount = %d, want 1", result.SuccessCount)
	}
	if result.SkippedCount != 2 {
		t.Errorf("SkippedCount = %d, want 2", result.SkippedCount)
	}
	if result.FailedCount != 0 {
		t.Errorf("FailedCount = %d, want 0", result.FailedCount)
	}

	if len(billRepo.created) != 1 {
		t.Fatalf("created %d bills, want 1", len(billRepo.created))
	}
	created := billRepo.created[0]
	if created.ResidentID != 1 {
		t.Errorf("created bill ResidentID = %d, want 1", created.ResidentID)
	}
	if created.Amount != 8000000 {
		t.Errorf("created bill Amount = %d, want 8000000", created.Amount)
	}
	wantDue := time.Date(2026, 5, 10, 0, 0, 0, 0, time.Local)
	if !created.DueDate.Equal(wantDue) {
		t.Errorf("created bill DueDate = %v, want %v", created.DueDate, wantDue)
	}
}

func TestConfirmPayment(t *testing.T) {
	now := time.Date(2026, 6, 2, 14, 30, 0, 0, time.UTC)
	svc, billRepo, _, _ := newTestBillingService(now)

	billRepo.bills[1] = &models.Bill{ID: 1, ResidentID: 1, Amount: 100, DueDate: now}
	billRepo.bills[2] = &models.Bill{ID: 2, ResidentID: 1, Amount: 200, DueDate: now}

	if err := svc.ConfirmPayment([]uint{1, 2}, "bank_transfer"); err != nil {
		t.Fatalf("ConfirmPayment returned error: %v", err)
	}

	if billRepo.paidMethod != "bank_transfer" {
		t.Errorf("paid method = %q, want bank_transfer", billRepo.paidMethod)
	}
	if !billRepo.paidAt.Equal(now) {
		t.Errorf("paidAt = %v, want %v", billRepo.paidAt, now)
	}
	for id, bill := range billRepo.bills {
		if bill.PaidAt == nil {
			t.Errorf("bill %d not marked paid", id)
		}
	}
}

func TestConfirmPaymentEmptyIDs(t *testing.T) {
	svc, _, _, _ := newTestBillingService(time.Now())

	if err := svc.ConfirmPayment(nil, "cash"); err == nil {
		t.Error("expected error for empty bill id list, got nil")
	}
}

func TestGetBillingStatistics(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	svc, billRepo, _, _ := newTestBillingService(now)

	paidAt := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	billRepo.bills[1] = &models.Bill{ID: 1, ResidentID: 1, Amount: 1000, DueDate: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC), PaidAt: &paidAt}
	// due today: still pending
	billRepo.bills[2] = &models.Bill{ID: 2, ResidentID: 2, Amount: 2000, DueDate: time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)}
	billRepo.bills[3] = &models.Bill{ID: 3, ResidentID: 3, Amount: 4000, DueDate: time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC)}

	stats, err := svc.GetBillingStatistics(repository.BillFilter{})
	if err != nil {
		t.Fatalf("GetBillingStatistics returned error: %v", err)
	}

	if stats.TotalBills != 3 {
		t.Errorf("TotalBills = %d, want 3", stats.TotalBills)
	}
	if stats.TotalPaid != 1 {
		t.Errorf("TotalPaid = %d, want 1", stats.TotalPaid)
	}
	if stats.TotalPending != 1 {
		t.Errorf("TotalPending = %d, want 1", stats.TotalPending)
	}
	if stats.TotalOverdue != 1 {
		t.Errorf("TotalOverdue = %d, want 1", stats.TotalOverdue)
	}
	if stats.TotalAmount != 7000 {
		t.Errorf("TotalAmount = %d, want 7000", stats.TotalAmount)
	}
	if stats.UnpaidAmount != 6000 {
		t.Errorf("UnpaidAmount = %d, want 6000", stats.UnpaidAmount)
	}
	if stats.OverdueAmount != 4000 {
		t.Errorf("OverdueAmount = %d, want 4000", stats.OverdueAmount)
	}
}

func TestPreviewFirstInvoice(t *testing.T) {
	svc, _, _, _ := newTestBillingService(time.Now())

	admission := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	invoice := svc.PreviewFirstInvoice(admission, 2900000)

	if invoice.RemainingDays != 28 {
		t.Errorf("RemainingDays = %d, want 28", invoice.RemainingDays)
	}
	if invoice.PartialMonthAmount != 2800000 {
		t.Errorf("PartialMonthAmount = %d, want 2800000", invoice.PartialMonthAmount)
	}
	if invoice.DepositAmount != 2900000 {
		t.Errorf("DepositAmount = %d, want 2900000", invoice.DepositAmount)
	}
	if invoice.TotalAmount != 5700000 {
		t.Errorf("TotalAmount = %d, want 5700000", invoice.TotalAmount)
	}
}
