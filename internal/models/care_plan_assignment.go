package models

import (
	"time"
)

// CarePlanAssignment represents the care_plan_assignments table. It links a
// resident to one main care plan, zero or more supplementary plans and a room
// selection for a billing period.
type CarePlanAssignment struct {
	ID               uint      `json:"id" gorm:"primarykey"`
	ResidentID       uint      `json:"resident_id" gorm:"column:resident_id"`
	SelectedRoomType *string   `json:"selected_room_type" gorm:"column:selected_room_type"`
	RoomCost         int64     `json:"room_cost" gorm:"column:room_cost"`
	CarePlansCost    int64     `json:"care_plans_cost" gorm:"column:care_plans_cost"`
	TotalCost        int64     `json:"total_cost" gorm:"column:total_cost"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName sets the insert table name for CarePlanAssignment
func (CarePlanAssignment) TableName() string {
	return "care_plan_assignments"
}
