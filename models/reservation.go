package models

import (
	"time"

	"gorm.io/gorm"
)

// Reservation statuses. Transitions form a DAG:
// Confirmed -> Checked-In -> Checked-Out, and Confirmed -> Cancelled.
const (
	ReservationConfirmed  = "Confirmed"
	ReservationCheckedIn  = "Checked-In"
	ReservationCheckedOut = "Checked-Out"
	ReservationCancelled  = "Cancelled"
)

// Reservation embeds the guest fields directly; guests have no
// standalone lifecycle in this system.
type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"referenceCode"`

	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Email     string `gorm:"size:150" json:"email"`
	Phone     string `gorm:"size:50" json:"phone"`

	CheckInDate  time.Time `gorm:"column:check_in_date;index" json:"checkInDate"`
	CheckOutDate time.Time `gorm:"column:check_out_date;index" json:"checkOutDate"`

	Status      string `gorm:"size:32;index;default:Confirmed" json:"status"`
	TotalGuests int    `gorm:"column:total_guests" json:"totalGuests"`

	RoomTypeID uint  `gorm:"column:room_type_id;index" json:"roomTypeId"`
	RoomID     *uint `gorm:"column:room_id;index" json:"roomId,omitempty"`

	SpecialRequests string `gorm:"type:text" json:"specialRequests,omitempty"`
	CreatedBy       string `gorm:"column:created_by;size:150" json:"createdBy,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
	Room     *Room    `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

// Nights returns the whole-day difference between check-out and check-in,
// truncated and never negative.
func (r *Reservation) Nights() int {
	n := int(r.CheckOutDate.Sub(r.CheckInDate).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}
