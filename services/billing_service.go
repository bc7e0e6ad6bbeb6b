package services

import (
	"errors"
	"strings"
	"time"

	"hms-backend/models"

	"gorm.io/gorm"
)

// DefaultTaxRate matches the flat rate the billing rules were written
// against; override with the TAX_RATE environment variable.
const DefaultTaxRate = 0.12

// BillingService derives invoices from reservations and keeps the
// invoice totals consistent with the charge and payment history.
type BillingService struct {
	DB      *gorm.DB
	TaxRate float64
}

func NewBillingService(db *gorm.DB, taxRate float64) *BillingService {
	if taxRate <= 0 {
		taxRate = DefaultTaxRate
	}
	return &BillingService{DB: db, TaxRate: taxRate}
}

// CreateInvoice opens the single invoice for a reservation.
// Room charges = nights x room-type base rate; a zero-night stay yields
// a zero room charge. Returns ErrConflict if the reservation already
// has an invoice.
func (s *BillingService) CreateInvoice(reservationID uint) (*models.Invoice, error) {
	var invoice models.Invoice

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.Preload("RoomType").First(&reservation, reservationID).Error; err != nil {
			return err
		}

		var existing models.Invoice
		err := tx.Where("reservation_id = ?", reservationID).First(&existing).Error
		if err == nil {
			return conflictf("reservation %d is already invoiced", reservationID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		roomCharges := float64(reservation.Nights()) * reservation.RoomType.BaseRate
		taxes := roomCharges * s.TaxRate

		invoice = models.Invoice{
			ReservationID: reservationID,
			RoomCharges:   roomCharges,
			Taxes:         taxes,
			TotalAmount:   roomCharges + taxes,
			PaymentStatus: models.PaymentUnpaid,
		}
		return tx.Create(&invoice).Error
	})
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, wrapDBErr(err, "create invoice")
	}
	return &invoice, nil
}

// AddCharge appends an ad-hoc charge and bumps the invoice totals in the
// same transaction: either both persist or neither does. The charge is
// taxed at the invoice's flat rate.
func (s *BillingService) AddCharge(invoiceID uint, description string, amount float64) (*models.Charge, error) {
	if strings.TrimSpace(description) == "" {
		return nil, validationf("charge description is required")
	}
	if amount <= 0 {
		return nil, validationf("charge amount must be positive")
	}

	charge := models.Charge{
		InvoiceID:   invoiceID,
		Description: strings.TrimSpace(description),
		Amount:      amount,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			return err
		}

		if err := tx.Create(&charge).Error; err != nil {
			return err
		}

		tax := amount * s.TaxRate
		return tx.Model(&invoice).Updates(map[string]interface{}{
			"additional_charges": gorm.Expr("additional_charges + ?", amount),
			"taxes":              gorm.Expr("taxes + ?", tax),
			"total_amount":       gorm.Expr("total_amount + ?", amount+tax),
		}).Error
	})
	if err != nil {
		return nil, wrapDBErr(err, "add charge")
	}
	return &charge, nil
}

// paymentStatusFor derives the status purely from the paid sum vs the
// invoice total, so replaying the payment history always converges.
func paymentStatusFor(paid, total float64) string {
	switch {
	case paid <= 0:
		return models.PaymentUnpaid
	case paid < total:
		return models.PaymentPartial
	default:
		return models.PaymentPaid
	}
}

// RecordPayment appends a payment and recomputes the payment status from
// the sum of all payments on the invoice, atomically.
func (s *BillingService) RecordPayment(invoiceID uint, amount float64, method, transactionID, processedBy string) (*models.Payment, error) {
	if amount <= 0 {
		return nil, validationf("payment amount must be positive")
	}

	payment := models.Payment{
		InvoiceID:     invoiceID,
		Amount:        amount,
		Method:        method,
		TransactionID: transactionID,
		ProcessedBy:   processedBy,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.First(&invoice, invoiceID).Error; err != nil {
			return err
		}

		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		var paid float64
		if err := tx.Model(&models.Payment{}).
			Where("invoice_id = ?", invoiceID).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&paid).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"payment_status": paymentStatusFor(paid, invoice.TotalAmount),
		}
		if paid >= invoice.TotalAmount {
			now := time.Now()
			updates["payment_date"] = &now
		}
		return tx.Model(&invoice).Updates(updates).Error
	})
	if err != nil {
		return nil, wrapDBErr(err, "record payment")
	}
	return &payment, nil
}

func (s *BillingService) GetInvoice(id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Preload("Reservation").Preload("Charges").Preload("Payments").
		First(&invoice, id).Error
	if err != nil {
		return nil, wrapDBErr(err, "get invoice")
	}
	return &invoice, nil
}

func (s *BillingService) GetByReservation(reservationID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.DB.Preload("Charges").Preload("Payments").
		Where("reservation_id = ?", reservationID).
		First(&invoice).Error
	if err != nil {
		return nil, wrapDBErr(err, "get invoice by reservation")
	}
	return &invoice, nil
}

func (s *BillingService) Charges(invoiceID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := s.DB.Where("invoice_id = ?", invoiceID).Order("created_at ASC").Find(&charges).Error
	if err != nil {
		return nil, wrapDBErr(err, "list charges")
	}
	return charges, nil
}

func (s *BillingService) Payments(invoiceID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.DB.Where("invoice_id = ?", invoiceID).Order("created_at ASC").Find(&payments).Error
	if err != nil {
		return nil, wrapDBErr(err, "list payments")
	}
	return payments, nil
}

func (s *BillingService) ListByStatus(status string) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.DB.Preload("Reservation").
		Where("payment_status = ?", status).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, wrapDBErr(err, "list invoices by status")
	}
	return invoices, nil
}

func (s *BillingService) ListByDateRange(start, end time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.DB.Preload("Reservation").
		Where("created_at >= ? AND created_at < ?", start, end.AddDate(0, 0, 1)).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, wrapDBErr(err, "list invoices by date range")
	}
	return invoices, nil
}

// OutstandingInvoices lists every invoice not yet fully paid.
func (s *BillingService) OutstandingInvoices() ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.DB.Preload("Reservation").
		Where("payment_status <> ?", models.PaymentPaid).
		Order("created_at ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, wrapDBErr(err, "list outstanding invoices")
	}
	return invoices, nil
}

// TotalRevenue sums fully paid invoice totals created within the range.
func (s *BillingService) TotalRevenue(start, end time.Time) (float64, error) {
	var total float64
	err := s.DB.Model(&models.Invoice{}).
		Where("payment_status = ?", models.PaymentPaid).
		Where("created_at >= ? AND created_at < ?", start, end.AddDate(0, 0, 1)).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, wrapDBErr(err, "total revenue")
	}
	return total, nil
}
