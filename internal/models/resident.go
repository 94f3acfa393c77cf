package models

import (
	"time"
)

// Resident represents the residents table
type Resident struct {
	ID               uint       `json:"id" gorm:"primarykey"`
	DocumentID       string     `json:"document_id" gorm:"column:document_id"`
	FullName         string     `json:"full_name" gorm:"column:full_name"`
	RoomNumber       string     `json:"room_number" gorm:"column:room_number"`
	DateOfBirth      *time.Time `json:"date_of_birth" gorm:"column:date_of_birth"`
	AdmissionDate    *time.Time `json:"admission_date" gorm:"column:admission_date"`
	Status           string     `json:"status" gorm:"column:status;default:active"`
	EmergencyContact *string    `json:"emergency_contact" gorm:"column:emergency_contact"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// TableName sets the insert table name for Resident
func (Resident) TableName() string {
	return "residents"
}
