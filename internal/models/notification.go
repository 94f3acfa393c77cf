package models

import (
	"time"
)

// Notification categories
const (
	NotificationCategoryBilling = "billing"
	NotificationCategoryVisit   = "visit"
	NotificationCategoryGeneral = "general"
)

// Notification represents the notifications table
type Notification struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	Recipient  string    `json:"recipient" gorm:"column:recipient"`
	ResidentID *uint     `json:"resident_id" gorm:"column:resident_id"`
	Category   string    `json:"category" gorm:"column:category;default:general"`
	Title      string    `json:"title" gorm:"column:title"`
	Body       string    `json:"body" gorm:"column:body"`
	IsRead     bool      `json:"is_read" gorm:"column:is_read;default:false"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the insert table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
