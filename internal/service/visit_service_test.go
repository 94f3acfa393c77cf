package service

import (
	"fmt"
	"testing"
	"time"

	"carehome-be-svc/internal/billing"
	"carehome-be-svc/internal/models"
)

// fakeVisitRepo is an in-memory VisitRepository for service tests
type fakeVisitRepo struct {
	visits map[uint]*models.Visit
}

func newFakeVisitRepo() *fakeVisitRepo {
	return &fakeVisitRepo{visits: make(map[uint]*models.Visit)}
}

func (f *fakeVisitRepo) GetVisitByID(id uint) (*models.Visit, error) {
	visit, ok := f.visits[id]
	if !ok {
		return nil, fmt.Errorf("visit %d not found", id)
	}
	return visit, nil
}

func (f *fakeVisitRepo) GetVisitsByResidentID(residentID uint, page int, limit int) ([]*models.Visit, int64, error) {
	var out []*models.Visit
	for _, visit := range f.visits {
		if visit.ResidentID == residentID {
			out = append(out, visit)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeVisitRepo) CreateVisit(visit *models.Visit) error {
	visit.ID = uint(len(f.visits) + 1)
	f.visits[visit.ID] = visit
	return nil
}

func (f *fakeVisitRepo) UpdateVisitStatus(id uint, status string) error {
	visit, ok := f.visits[id]
	if !ok {
		return fmt.Errorf("visit %d not found", id)
	}
	visit.Status = status
	return nil
}

// noopNotificationService records visit notifications without persistence
type noopNotificationService struct {
	visitNotified int
}

func (n *noopNotificationService) GetNotifications(recipient string, unreadOnly bool, page int, limit int) ([]*models.Notification, int64, error) {
	return nil, 0, nil
}

func (n *noopNotificationService) MarkRead(id uint) error { return nil }

func (n *noopNotificationService) NotifyVisitScheduled(resident *models.Resident, visit *models.Visit) {
	n.visitNotified++
}

func (n *noopNotificationService) NotifyBillOverdue(bill billing.EnhancedBill) {}

func newTestVisitService() (VisitService, *fakeVisitRepo, *fakeResidentRepo, *noopNotificationService) {
	visitRepo := newFakeVisitRepo()
	residentRepo := newFakeResidentRepo()
	notifications := &noopNotificationService{}
	svc := NewVisitService(visitRepo, residentRepo, notifications, testLogger())
	return svc, visitRepo, residentRepo, notifications
}

func TestScheduleVisit(t *testing.T) {
	svc, visitRepo, residentRepo, notifications := newTestVisitService()
	residentRepo.residents[1] = &models.Resident{ID: 1, FullName: "Budi Santoso", Status: "active"}

	visit := &models.Visit{
		ResidentID:  1,
		VisitorName: "Ani Santoso",
		ScheduledAt: time.Now().Add(48 * time.Hour),
	}
	if err := svc.ScheduleVisit(visit); err != nil {
		t.Fatalf("ScheduleVisit returned error: %v", err)
	}

	if visit.Status != models.VisitStatusScheduled {
		t.Errorf("Status = %q, want %q", visit.Status, models.VisitStatusScheduled)
	}
	if len(visitRepo.visits) != 1 {
		t.Errorf("stored %d visits, want 1", len(visitRepo.visits))
	}
	if notifications.visitNotified != 1 {
		t.Errorf("visit notifications sent = %d, want 1", notifications.visitNotified)
	}
}

func TestScheduleVisitValidation(t *testing.T) {
	svc, _, residentRepo, _ := newTestVisitService()
	residentRepo.residents[1] = &models.Resident{ID: 1, FullName: "Budi Santoso", Status: "active"}

	tests := []struct {
		name  string
		visit *models.Visit
	}{
		{
			name:  "unknown resident",
			visit: &models.Visit{ResidentID: 42, ScheduledAt: time.Now().Add(time.Hour)},
		},
		{
			name:  "scheduled in the past",
			visit: &models.Visit{ResidentID: 1, ScheduledAt: time.Now().Add(-time.Hour)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := svc.ScheduleVisit(tt.visit); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestUpdateVisitStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr bool
	}{
		{name: "scheduled to approved", from: models.VisitStatusScheduled, to: models.VisitStatusApproved},
		{name: "scheduled to cancelled", from: models.VisitStatusScheduled, to: models.VisitStatusCancelled},
		{name: "approved to completed", from: models.VisitStatusApproved, to: models.VisitStatusCompleted},
		{name: "approved to cancelled", from: models.VisitStatusApproved, to: models.VisitStatusCancelled},
		{name: "scheduled to completed", from: models.VisitStatusScheduled, to: models.VisitStatusCompleted, wantErr: true},
		{name: "completed to cancelled", from: models.VisitStatusCompleted, to: models.VisitStatusCancelled, wantErr: true},
		{name: "cancelled to approved", from: models.VisitStatusCancelled, to: models.VisitStatusApproved, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, visitRepo, _, _ := newTestVisitService()
			visitRepo.visits[1] = &models.Visit{ID: 1, ResidentID: 1, Status: tt.from}

			err := svc.UpdateVisitStatus(1, tt.to)
			if tt.wantErr {
				if err == nil {
					t.Errorf("transition %s -> %s: expected error, got nil", tt.from, tt.to)
				}
				return
			}
			if err != nil {
				t.Fatalf("transition %s -> %s: unexpected error: %v", tt.from, tt.to, err)
			}
			if visitRepo.visits[1].Status != tt.to {
				t.Errorf("stored status = %q, want %q", visitRepo.visits[1].Status, tt.to)
			}
		})
	}
}
