package models

import (
	"time"

	"gorm.io/gorm"
)

// Invoice payment statuses, derived from sum(payments) vs total.
const (
	PaymentUnpaid  = "Unpaid"
	PaymentPartial = "Partially Paid"
	PaymentPaid    = "Paid"
)

// Invoice carries the running totals; Charges and Payments are the
// line-item history the totals are derived from. At most one invoice
// exists per reservation (unique index on reservation_id).
type Invoice struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ReservationID uint `gorm:"column:reservation_id;uniqueIndex" json:"reservationId"`

	RoomCharges       float64 `gorm:"column:room_charges" json:"roomCharges"`
	AdditionalCharges float64 `gorm:"column:additional_charges" json:"additionalCharges"`
	Taxes             float64 `gorm:"column:taxes" json:"taxes"`
	TotalAmount       float64 `gorm:"column:total_amount" json:"totalAmount"`

	PaymentStatus string     `gorm:"column:payment_status;size:20;index;default:Unpaid" json:"paymentStatus"`
	PaymentDate   *time.Time `gorm:"column:payment_date" json:"paymentDate,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Reservation Reservation `gorm:"foreignKey:ReservationID" json:"reservation,omitempty"`
	Charges     []Charge    `gorm:"foreignKey:InvoiceID" json:"charges,omitempty"`
	Payments    []Payment   `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}
