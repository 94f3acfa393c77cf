package models

import (
	"time"
)

// Visit statuses
const (
	VisitStatusScheduled = "scheduled"
	VisitStatusApproved  = "approved"
	VisitStatusCompleted = "completed"
	VisitStatusCancelled = "cancelled"
)

// Visit represents the visits table
type Visit struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	ResidentID   uint      `json:"resident_id" gorm:"column:resident_id"`
	VisitorName  string    `json:"visitor_name" gorm:"column:visitor_name"`
	Relationship string    `json:"relationship" gorm:"column:relationship"`
	ScheduledAt  time.Time `json:"scheduled_at" gorm:"column:scheduled_at"`
	Status       string    `json:"status" gorm:"column:status;default:scheduled"`
	Notes        *string   `json:"notes" gorm:"column:notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the insert table name for Visit
func (Visit) TableName() string {
	return "visits"
}
