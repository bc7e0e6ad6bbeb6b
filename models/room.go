package models

import (
	"time"

	"gorm.io/gorm"
)

// Room statuses. The room lifecycle is independent of the reservation
// lifecycle: a room can sit in Cleaning or Maintenance with no booking.
const (
	RoomAvailable   = "Available"
	RoomOccupied    = "Occupied"
	RoomCleaning    = "Cleaning"
	RoomMaintenance = "Maintenance"
)

type Room struct {
	gorm.Model

	RoomNumber string `gorm:"column:room_number;uniqueIndex;size:50" json:"roomNumber"`
	RoomTypeID *uint  `gorm:"column:room_type_id;index" json:"roomTypeId,omitempty"`
	Floor      string `gorm:"size:10" json:"floor"`
	Status     string `gorm:"size:32;default:Available" json:"status"`

	LastCleaned *time.Time `gorm:"column:last_cleaned" json:"lastCleaned,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}

// ValidRoomStatus reports whether s is one of the known room statuses.
func ValidRoomStatus(s string) bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomCleaning, RoomMaintenance:
		return true
	}
	return false
}
