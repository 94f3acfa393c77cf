package billing

import (
	"time"
)

// Status is the derived payment state of a bill. It is never persisted;
// it is recomputed from paid_at and due_date whenever a bill is read.
type Status string

// Bill statuses
const (
	StatusPaid    Status = "paid"
	StatusPending Status = "pending"
	StatusOverdue Status = "overdue"
)

// DeriveStatus computes a bill's effective status. A set paidAt always wins.
// Otherwise due date and now are compared on calendar days only: a bill due
// today is still pending, the full due day counts as on time.
func DeriveStatus(paidAt *time.Time, dueDate time.Time, now time.Time) Status {
	if paidAt != nil {
		return StatusPaid
	}

	due := truncateToDay(dueDate)
	today := truncateToDay(now)

	if due.Before(today) {
		return StatusOverdue
	}
	return StatusPending
}

// truncateToDay strips the time-of-day, keeping the date in its own location
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
