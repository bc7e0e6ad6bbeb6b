package models

import "time"

// InventoryLog is the append-only audit trail of quantity changes.
// Entries are never mutated and only removed together with their item.
type InventoryLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ItemID       uint      `gorm:"column:item_id;index" json:"itemId"`
	ChangeAmount int       `gorm:"column:change_amount" json:"changeAmount"`
	Notes        string    `gorm:"size:255" json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
