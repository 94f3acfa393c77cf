package scheduler

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"carehome-be-svc/internal/billing"
	"carehome-be-svc/internal/models"
	"carehome-be-svc/internal/repository"
	"carehome-be-svc/internal/service"
	"carehome-be-svc/pkg/logger"
)

// BillingScheduler handles scheduled billing operations
type BillingScheduler struct {
	billingService      service.BillingService
	notificationService service.NotificationService
	schedulerLogRepo    repository.SchedulerLogRepository
	logger              *logger.Logger
	cron                *cron.Cron
	monthlyBillingExpr  string
	overdueReminderExpr string
}

// NewBillingScheduler creates a new billing scheduler
func NewBillingScheduler(
	billingService service.BillingService,
	notificationService service.NotificationService,
	schedulerLogRepo repository.SchedulerLogRepository,
	appLogger *logger.Logger,
	monthlyBillingExpr string,
	overdueReminderExpr string,
) *BillingScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &BillingScheduler{
		billingService:      billingService,
		notificationService: notificationService,
		schedulerLogRepo:    schedulerLogRepo,
		logger:              appLogger,
		cron:                c,
		monthlyBillingExpr:  monthlyBillingExpr,
		overdueReminderExpr: overdueReminderExpr,
	}
}

// Start initializes and starts all scheduled jobs
func (s *BillingScheduler) Start() error {
	s.logger.Info("Starting billing scheduler...")

	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.monthlyBillingExpr).Info("Scheduling monthly billing job")
	if _, err := s.cron.AddFunc(s.monthlyBillingExpr, s.createMonthlyBills); err != nil {
		return fmt.Errorf("failed to schedule monthly billing job: %w", err)
	}

	s.logger.WithField("cron_expression", s.overdueReminderExpr).Info("Scheduling overdue reminder job")
	if _, err := s.cron.AddFunc(s.overdueReminderExpr, s.sendOverdueReminders); err != nil {
		return fmt.Errorf("failed to schedule overdue reminder job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Billing scheduler started successfully")

	return nil
}

// Stop gracefully stops the scheduler
func (s *BillingScheduler) Stop() {
	s.logger.Info("Stopping billing scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Billing scheduler stopped successfully")
}

// createMonthlyBills is the scheduled job that bills all active residents
// for the current month
func (s *BillingScheduler) createMonthlyBills() {
	jobCode := "MONTHLY_BILL_CREATION"
	now := time.Now()
	docID := uuid.New().String()

	s.logScheduler(jobCode, docID, "Starting scheduled monthly bill creation", "START", &now)
	s.logger.Info("Starting scheduled monthly bill creation...")

	month := int(now.Month())
	year := now.Year()

	runningMessage := fmt.Sprintf("Creating monthly bills for month %d year %d", month, year)
	s.logScheduler(jobCode, docID, runningMessage, "RUNNING", &now)

	result, err := s.billingService.CreateMonthlyBills(month, year)
	if err != nil {
		failedMessage := fmt.Sprintf("Failed to create monthly bills: %v", err)
		s.logScheduler(jobCode, docID, failedMessage, "FAILED", &now)
		s.logger.WithError(err).Error("Failed to create monthly bills")
		return
	}

	resultJSON, _ := json.Marshal(result)
	successMessage := fmt.Sprintf("Monthly bills created successfully: %s", string(resultJSON))
	s.logScheduler(jobCode, docID, successMessage, "SUCCESS", &now)

	s.logger.WithField("result", result).Info("Scheduled monthly bill creation completed")
}

// sendOverdueReminders is the scheduled job that scans unpaid bills and
// emits a notification for every overdue one
func (s *BillingScheduler) sendOverdueReminders() {
	jobCode := "OVERDUE_REMINDER"
	now := time.Now()
	docID := uuid.New().String()

	s.logScheduler(jobCode, docID, "Starting overdue reminder scan", "START", &now)
	s.logger.Info("Starting overdue reminder scan...")

	bills, _, err := s.billingService.ListEnhancedBills(repository.BillFilter{UnpaidOnly: true}, 1, 500)
	if err != nil {
		failedMessage := fmt.Sprintf("Failed to list unpaid bills: %v", err)
		s.logScheduler(jobCode, docID, failedMessage, "FAILED", &now)
		s.logger.WithError(err).Error("Failed to list unpaid bills")
		return
	}

	overdueCount := 0
	for _, bill := range bills {
		if bill.Status != billing.StatusOverdue {
			continue
		}
		s.notificationService.NotifyBillOverdue(bill)
		overdueCount++
	}

	successMessage := fmt.Sprintf("Overdue reminder scan completed: %d reminders sent", overdueCount)
	s.logScheduler(jobCode, docID, successMessage, "SUCCESS", &now)

	s.logger.WithField("overdue_count", overdueCount).Info("Overdue reminder scan completed")
}

// logScheduler creates a new job log entry in the database
func (s *BillingScheduler) logScheduler(jobCode, documentID, message, status string, createdAt *time.Time) {
	logEntry := &models.SchedulerLog{
		DocumentID: &documentID,
		JobCode:    &jobCode,
		Message:    &message,
		JobStatus:  &status,
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	if err := s.schedulerLogRepo.CreateSchedulerLog(logEntry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
