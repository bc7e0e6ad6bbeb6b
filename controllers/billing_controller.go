package controllers

import (
	"net/http"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type BillingController struct {
	Service *services.BillingService
}

func NewBillingController(s *services.BillingService) *BillingController {
	return &BillingController{Service: s}
}

type createInvoiceRequest struct {
	ReservationID uint `json:"reservationId"`
}

// CreateInvoice handles POST /api/invoices.
func (bc *BillingController) CreateInvoice(c *gin.Context) {
	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ReservationID == 0 {
		utils.JSONError(c, http.StatusBadRequest, "reservationId is required")
		return
	}

	invoice, err := bc.Service.CreateInvoice(req.ReservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, invoice)
}

// GetInvoice handles GET /api/invoices/:id.
func (bc *BillingController) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	invoice, err := bc.Service.GetInvoice(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

// GetByReservation handles GET /api/reservations/:id/invoice.
func (bc *BillingController) GetByReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	invoice, err := bc.Service.GetByReservation(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoice)
}

type addChargeRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// AddCharge handles POST /api/invoices/:id/charges.
func (bc *BillingController) AddCharge(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req addChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	charge, err := bc.Service.AddCharge(id, req.Description, req.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, charge)
}

// ListCharges handles GET /api/invoices/:id/charges.
func (bc *BillingController) ListCharges(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	charges, err := bc.Service.Charges(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, charges)
}

type recordPaymentRequest struct {
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	TransactionID string  `json:"transactionId"`
}

// RecordPayment handles POST /api/invoices/:id/payments.
func (bc *BillingController) RecordPayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req recordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	if req.TransactionID == "" {
		req.TransactionID = utils.GenerateTransactionID()
	}

	payment, err := bc.Service.RecordPayment(id, req.Amount, req.Method, req.TransactionID, currentUsername(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

// ListPayments handles GET /api/invoices/:id/payments.
func (bc *BillingController) ListPayments(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	payments, err := bc.Service.Payments(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, payments)
}

// ListInvoices handles GET /api/invoices with optional status or
// start/end date filters; without filters it lists outstanding invoices.
func (bc *BillingController) ListInvoices(c *gin.Context) {
	if status := c.Query("status"); status != "" {
		invoices, err := bc.Service.ListByStatus(status)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, invoices)
		return
	}

	if c.Query("start") != "" || c.Query("end") != "" {
		start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, err.Error())
			return
		}
		invoices, err := bc.Service.ListByDateRange(start, end)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, invoices)
		return
	}

	invoices, err := bc.Service.OutstandingInvoices()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, invoices)
}

// TotalRevenue handles GET /api/invoices/revenue?start=&end=.
func (bc *BillingController) TotalRevenue(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	total, err := bc.Service.TotalRevenue(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"totalRevenue": total})
}
