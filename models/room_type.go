package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoomType is reference data: the nightly rate lives here, not on the room.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	TypeName    string  `gorm:"size:100;uniqueIndex" json:"typeName"`
	Description string  `gorm:"type:text" json:"description"`
	BaseRate    float64 `gorm:"column:base_rate" json:"baseRate"`
	MaxGuests   int     `gorm:"column:max_guests" json:"maxGuests"`

	// JSON array of amenity names, e.g. ["WiFi","Minibar"]
	Amenities datatypes.JSON `gorm:"column:amenities" json:"amenities,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
