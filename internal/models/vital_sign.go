package models

import (
	"time"
)

// VitalSign represents the vital_signs table
type VitalSign struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	ResidentID  uint      `json:"resident_id" gorm:"column:resident_id"`
	MeasuredAt  time.Time `json:"measured_at" gorm:"column:measured_at"`
	Systolic    *int      `json:"systolic" gorm:"column:systolic"`
	Diastolic   *int      `json:"diastolic" gorm:"column:diastolic"`
	HeartRate   *int      `json:"heart_rate" gorm:"column:heart_rate"`
	Temperature *float64  `json:"temperature" gorm:"column:temperature"`
	SpO2        *int      `json:"spo2" gorm:"column:spo2"`
	Notes       *string   `json:"notes" gorm:"column:notes"`
	RecordedBy  *string   `json:"recorded_by" gorm:"column:recorded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets the insert table name for VitalSign
func (VitalSign) TableName() string {
	return "vital_signs"
}
