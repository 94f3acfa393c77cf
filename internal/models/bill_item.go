package models

import (
	"time"
)

// BillItem represents the bill_items table: generic line items attached
// directly to a bill. Used when a bill has no care plan assignment to derive
// line items from (e.g. ad-hoc charges).
type BillItem struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	BillID      uint      `json:"bill_id" gorm:"column:bill_id"`
	ItemID      *string   `json:"item_id" gorm:"column:item_id"`
	Name        string    `json:"name" gorm:"column:name"`
	Amount      int64     `json:"amount" gorm:"column:amount"`
	Category    string    `json:"category" gorm:"column:category"`
	Description string    `json:"description" gorm:"column:description"`
	Position    int       `json:"position" gorm:"column:position"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName sets the insert table name for BillItem
func (BillItem) TableName() string {
	return "bill_items"
}
