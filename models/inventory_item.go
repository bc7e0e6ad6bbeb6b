package models

import (
	"time"

	"gorm.io/gorm"
)

type InventoryItem struct {
	gorm.Model

	Name     string `gorm:"size:150" json:"name"`
	Category string `gorm:"size:100;index" json:"category"`

	Quantity     int     `json:"quantity"`
	UnitCost     float64 `gorm:"column:unit_cost" json:"unitCost"`
	Supplier     string  `gorm:"size:150" json:"supplier"`
	ReorderLevel int     `gorm:"column:reorder_level;default:10" json:"reorderLevel"`

	LastRestocked *time.Time `gorm:"column:last_restocked" json:"lastRestocked,omitempty"`
}

// TotalValue is derived, never stored.
func (i *InventoryItem) TotalValue() float64 {
	return float64(i.Quantity) * i.UnitCost
}
