package models

import "time"

type Payment struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	InvoiceID uint    `gorm:"column:invoice_id;index" json:"invoiceId"`
	Amount    float64 `json:"amount"`

	Method        string `gorm:"size:50" json:"method"`
	TransactionID string `gorm:"column:transaction_id;size:64" json:"transactionId"`
	ProcessedBy   string `gorm:"column:processed_by;size:150" json:"processedBy"`

	CreatedAt time.Time `json:"created_at"`
}
