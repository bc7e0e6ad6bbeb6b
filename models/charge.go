package models

import "time"

// Charge is an ad-hoc line item added to an invoice after creation
// (minibar, laundry, ...). Taxed at the same flat rate as room charges.
type Charge struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	InvoiceID   uint      `gorm:"column:invoice_id;index" json:"invoiceId"`
	Description string    `gorm:"size:255" json:"description"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}
