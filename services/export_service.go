package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"hms-backend/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportService renders read-side data as CSV or XLSX. CSV writing
// handles quoting per RFC 4180; nothing here mutates state.
type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

// ReservationsCSV streams reservations checking in within [start, end].
func (s *ExportService) ReservationsCSV(w io.Writer, start, end time.Time) error {
	var reservations []models.Reservation
	err := s.DB.Preload("Room").Preload("RoomType").
		Where("check_in_date >= ? AND check_in_date <= ?", truncateToDay(start), truncateToDay(end)).
		Order("check_in_date ASC").
		Find(&reservations).Error
	if err != nil {
		return wrapDBErr(err, "load reservations for export")
	}

	cw := csv.NewWriter(w)
	header := []string{
		"Reference", "First Name", "Last Name", "Email", "Phone",
		"Check-In", "Check-Out", "Nights", "Status", "Guests", "Room Type", "Room",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range reservations {
		r := &reservations[i]
		roomNumber := ""
		if r.Room != nil {
			roomNumber = r.Room.RoomNumber
		}
		record := []string{
			r.ReferenceCode,
			r.FirstName,
			r.LastName,
			r.Email,
			r.Phone,
			r.CheckInDate.Format("2006-01-02"),
			r.CheckOutDate.Format("2006-01-02"),
			strconv.Itoa(r.Nights()),
			r.Status,
			strconv.Itoa(r.TotalGuests),
			r.RoomType.TypeName,
			roomNumber,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// InvoicesCSV streams invoices created within [start, end].
func (s *ExportService) InvoicesCSV(w io.Writer, start, end time.Time) error {
	var invoices []models.Invoice
	err := s.DB.Preload("Reservation").
		Where("created_at >= ? AND created_at < ?", truncateToDay(start), truncateToDay(end).AddDate(0, 0, 1)).
		Order("created_at ASC").
		Find(&invoices).Error
	if err != nil {
		return wrapDBErr(err, "load invoices for export")
	}

	cw := csv.NewWriter(w)
	header := []string{
		"Invoice ID", "Reservation Ref", "Guest", "Room Charges",
		"Additional Charges", "Taxes", "Total", "Payment Status", "Payment Date",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range invoices {
		inv := &invoices[i]
		paymentDate := ""
		if inv.PaymentDate != nil {
			paymentDate = inv.PaymentDate.Format("2006-01-02")
		}
		record := []string{
			strconv.FormatUint(uint64(inv.ID), 10),
			inv.Reservation.ReferenceCode,
			inv.Reservation.FirstName + " " + inv.Reservation.LastName,
			strconv.FormatFloat(inv.RoomCharges, 'f', 2, 64),
			strconv.FormatFloat(inv.AdditionalCharges, 'f', 2, 64),
			strconv.FormatFloat(inv.Taxes, 'f', 2, 64),
			strconv.FormatFloat(inv.TotalAmount, 'f', 2, 64),
			inv.PaymentStatus,
			paymentDate,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// OccupancyXLSX builds a spreadsheet with the daily occupancy report.
func (s *ExportService) OccupancyXLSX(reporting *ReportingService, start, end time.Time) (*excelize.File, error) {
	rows, err := reporting.Occupancy(start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "Occupancy"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Date", "Total Rooms", "Occupied Rooms", "Occupancy %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{row.Date, row.TotalRooms, row.OccupiedRooms, row.OccupancyRate}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("write row: %w", err)
			}
		}
	}
	return f, nil
}
