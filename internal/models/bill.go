package models

import (
	"time"
)

// Bill represents the bills table. Amounts are stored in the smallest
// currency unit. Status is never stored; it is derived from paid_at and
// due_date at read time.
type Bill struct {
	ID            uint       `json:"id" gorm:"primarykey"`
	DocumentID    *string    `json:"document_id" gorm:"column:document_id"`
	ResidentID    uint       `json:"resident_id" gorm:"column:resident_id"`
	AssignmentID  *uint      `json:"assignment_id" gorm:"column:assignment_id"`
	Amount        int64      `json:"amount" gorm:"column:amount"`
	DueDate       time.Time  `json:"due_date" gorm:"column:due_date"`
	PaidAt        *time.Time `json:"paid_at" gorm:"column:paid_at"`
	PaymentMethod *string    `json:"payment_method" gorm:"column:payment_method"`
	Notes         *string    `json:"notes" gorm:"column:notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for Bill
func (Bill) TableName() string {
	return "bills"
}
