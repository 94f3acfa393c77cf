package models

import (
	"strings"
	"time"
)

// RoomType represents the room_types table
type RoomType struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	TypeCode     string    `json:"type_code" gorm:"column:type_code;uniqueIndex"`
	TypeName     string    `json:"type_name" gorm:"column:type_name"`
	MonthlyPrice int64     `json:"monthly_price" gorm:"column:monthly_price"`
	Description  string    `json:"description" gorm:"column:description"`
	Amenities    string    `json:"amenities" gorm:"column:amenities"` // comma-separated list
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName sets the insert table name for RoomType
func (RoomType) TableName() string {
	return "room_types"
}

// AmenityList splits the stored amenities string into a slice
func (r *RoomType) AmenityList() []string {
	if r.Amenities == "" {
		return nil
	}
	parts := strings.Split(r.Amenities, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
