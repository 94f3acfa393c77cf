package service

import (
	"testing"
	"time"

	"carehome-be-svc/internal/models"
)

func newTestResidentService(now time.Time) (ResidentService, *fakeBillRepo, *fakeResidentRepo, *fakeCarePlanRepo) {
	billingSvc, billRepo, residentRepo, carePlanRepo := newTestBillingService(now)
	svc := NewResidentService(residentRepo, carePlanRepo, billingSvc, testLogger())
	return svc, billRepo, residentRepo, carePlanRepo
}

func TestAdmitResident(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	svc, billRepo, residentRepo, carePlanRepo := newTestResidentService(now)
	seedCatalog(carePlanRepo)

	admission := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	resident, bill, err := svc.AdmitResident(AdmissionRequest{
		FullName:      "Budi Santoso",
		RoomNumber:    "B-03",
		AdmissionDate: admission,
		CarePlanIDs:   []uint{1, 2},
		RoomTypeCode:  "single",
	})
	if err != nil {
		t.Fatalf("AdmitResident returned error: %v", err)
	}

	if resident.Status != "active" {
		t.Errorf("resident Status = %q, want active", resident.Status)
	}
	if resident.AdmissionDate == nil || !resident.AdmissionDate.Equal(admission) {
		t.Errorf("AdmissionDate = %v, want %v", resident.AdmissionDate, admission)
	}
	if _, ok := residentRepo.residents[resident.ID]; !ok {
		t.Error("resident not persisted")
	}

	assignment, err := carePlanRepo.GetAssignmentByResidentID(resident.ID)
	if err != nil {
		t.Fatalf("assignment not created: %v", err)
	}
	// plans 5,000,000 + 1,500,000 plus single room 3,000,000
	if assignment.CarePlansCost != 6500000 {
		t.Errorf("CarePlansCost = %d, want 6500000", assignment.CarePlansCost)
	}
	if assignment.RoomCost != 3000000 {
		t.Errorf("RoomCost = %d, want 3000000", assignment.RoomCost)
	}
	if assignment.TotalCost != 9500000 {
		t.Errorf("TotalCost = %d, want 9500000", assignment.TotalCost)
	}

	// January has 31 days, admission on the 20th leaves 12 days
	dailyRate := float64(9500000) / 31
	wantPartial := int64(dailyRate*12 + 0.5)
	wantTotal := wantPartial + 9500000
	if bill.Amount != wantTotal {
		t.Errorf("bill Amount = %d, want %d", bill.Amount, wantTotal)
	}
	wantDue := time.Date(2026, 1, 20, 23, 59, 0, 0, time.UTC)
	if !bill.DueDate.Equal(wantDue) {
		t.Errorf("bill DueDate = %v, want %v", bill.DueDate, wantDue)
	}
	if len(billRepo.items[bill.ID]) != 2 {
		t.Errorf("bill has %d items, want 2", len(billRepo.items[bill.ID]))
	}
}

func TestAdmitResidentValidation(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	admission := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  AdmissionRequest
	}{
		{
			name: "missing name",
			req:  AdmissionRequest{AdmissionDate: admission, CarePlanIDs: []uint{1}},
		},
		{
			name: "no care plans",
			req:  AdmissionRequest{FullName: "Budi Santoso", AdmissionDate: admission},
		},
		{
			name: "no main plan",
			req:  AdmissionRequest{FullName: "Budi Santoso", AdmissionDate: admission, CarePlanIDs: []uint{2}},
		},
		{
			name: "unknown care plan",
			req:  AdmissionRequest{FullName: "Budi Santoso", AdmissionDate: admission, CarePlanIDs: []uint{1, 99}},
		},
		{
			name: "unknown room type",
			req:  AdmissionRequest{FullName: "Budi Santoso", AdmissionDate: admission, CarePlanIDs: []uint{1}, RoomTypeCode: "penthouse"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, residentRepo, carePlanRepo := newTestResidentService(now)
			seedCatalog(carePlanRepo)

			if _, _, err := svc.AdmitResident(tt.req); err == nil {
				t.Error("expected error, got nil")
			}
			if len(residentRepo.residents) != 0 {
				t.Errorf("persisted %d residents, want 0", len(residentRepo.residents))
			}
		})
	}
}

func TestAdmitResidentTwoMainPlans(t *testing.T) {
	now := time.Date(2026, 1, 10, 8, 0, 0, 0, time.UTC)
	svc, _, _, carePlanRepo := newTestResidentService(now)
	seedCatalog(carePlanRepo)
	carePlanRepo.plans[3] = &models.CarePlan{ID: 3, PlanName: "Dementia Care", Category: models.PlanCategoryMain, MonthlyPrice: 7000000}

	_, _, err := svc.AdmitResident(AdmissionRequest{
		FullName:      "Budi Santoso",
		AdmissionDate: time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC),
		CarePlanIDs:   []uint{1, 3},
	})
	if err == nil {
		t.Error("expected error for two main plans, got nil")
	}
}

func TestDischargeResident(t *testing.T) {
	svc, _, residentRepo, _ := newTestResidentService(time.Now())
	residentRepo.residents[1] = &models.Resident{ID: 1, FullName: "Budi Santoso", Status: "active"}

	if err := svc.DischargeResident(1); err != nil {
		t.Fatalf("DischargeResident returned error: %v", err)
	}
	if residentRepo.residents[1].Status != "discharged" {
		t.Errorf("Status = %q, want discharged", residentRepo.residents[1].Status)
	}

	if err := svc.DischargeResident(42); err == nil {
		t.Error("expected error for unknown resident, got nil")
	}
}
