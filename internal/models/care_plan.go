package models

import (
	"time"
)

// Care plan categories. Every assignment carries exactly one main plan and
// any number of supplementary plans.
const (
	PlanCategoryMain          = "main"
	PlanCategorySupplementary = "supplementary"
)

// CarePlan represents the care_plans table
type CarePlan struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	PlanName     string    `json:"plan_name" gorm:"column:plan_name"`
	Category     string    `json:"category" gorm:"column:category"`
	MonthlyPrice int64     `json:"monthly_price" gorm:"column:monthly_price"`
	Description  string    `json:"description" gorm:"column:description"`
	IsActive     *bool     `json:"is_active" gorm:"column:is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the insert table name for CarePlan
func (CarePlan) TableName() string {
	return "care_plans"
}
