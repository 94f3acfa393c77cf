package models

// AssignmentPlanLink represents the care_plan_assignments_care_plan_lnk table.
// Position preserves the order plans were attached in.
type AssignmentPlanLink struct {
	ID           uint `json:"id" gorm:"primarykey"`
	AssignmentID uint `json:"assignment_id" gorm:"column:assignment_id"`
	CarePlanID   uint `json:"care_plan_id" gorm:"column:care_plan_id"`
	Position     int  `json:"position" gorm:"column:position"`
}

// TableName sets the insert table name for AssignmentPlanLink
func (AssignmentPlanLink) TableName() string {
	return "care_plan_assignments_care_plan_lnk"
}
