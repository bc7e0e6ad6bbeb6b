package services

import (
	"testing"
)

// seedReportingData creates two Standard rooms and one invoiced stay
// from Jan 10 to Jan 13 at $100 per night.
func seedReportingData(t *testing.T) *ReportingService {
	t.Helper()

	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 2)
	reservations := NewReservationService(db)
	billing := NewBillingService(db, 0.12)

	r := mustCreateReservation(t, reservations, typeID, date(2024, 1, 10), date(2024, 1, 13))
	if _, err := billing.CreateInvoice(r.ID); err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return NewReportingService(db)
}

func TestSummaryReport(t *testing.T) {
	reporting := seedReportingData(t)

	// Jan 10-12 inclusive: 3 days, 2 rooms, 3 room-nights sold.
	report, err := reporting.Summary(date(2024, 1, 10), date(2024, 1, 12))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if report.Days != 3 || report.TotalRooms != 2 {
		t.Fatalf("range shape wrong: %+v", report)
	}
	if report.RoomNightsSold != 3 {
		t.Fatalf("room-nights sold: want 3, got %d", report.RoomNightsSold)
	}
	if report.OccupancyRate != 50.0 {
		t.Fatalf("occupancy: want 50.0, got %v", report.OccupancyRate)
	}
	if report.ADR != 100.0 {
		t.Fatalf("ADR: want 100.0, got %v", report.ADR)
	}
	if report.RevPAR != 50.0 {
		t.Fatalf("RevPAR: want 50.0, got %v", report.RevPAR)
	}
}

func TestSummaryClampsStayToRange(t *testing.T) {
	reporting := seedReportingData(t)

	// Only the night of Jan 12 falls inside Jan 12-14.
	report, err := reporting.Summary(date(2024, 1, 12), date(2024, 1, 14))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if report.RoomNightsSold != 1 {
		t.Fatalf("clamped room-nights: want 1, got %d", report.RoomNightsSold)
	}
}

func TestOccupancyRows(t *testing.T) {
	reporting := seedReportingData(t)

	rows, err := reporting.Occupancy(date(2024, 1, 9), date(2024, 1, 13))
	if err != nil {
		t.Fatalf("occupancy: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 daily rows, got %d", len(rows))
	}

	// The stay covers the nights of the 10th, 11th and 12th only:
	// checkout day itself is not an occupied night.
	wantOccupied := map[string]int64{
		"2024-01-09": 0,
		"2024-01-10": 1,
		"2024-01-11": 1,
		"2024-01-12": 1,
		"2024-01-13": 0,
	}
	for _, row := range rows {
		if row.OccupiedRooms != wantOccupied[row.Date] {
			t.Errorf("%s: want %d occupied, got %d", row.Date, wantOccupied[row.Date], row.OccupiedRooms)
		}
	}
	if rows[1].OccupancyRate != 50.0 {
		t.Fatalf("occupancy rate on the 10th: want 50.0, got %v", rows[1].OccupancyRate)
	}
}

func TestRevenueAttributedToCheckIn(t *testing.T) {
	reporting := seedReportingData(t)

	rows, err := reporting.Revenue(date(2024, 1, 9), date(2024, 1, 11))
	if err != nil {
		t.Fatalf("revenue: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for _, row := range rows {
		switch row.Date {
		case "2024-01-10":
			if !almostEqual(row.RoomCharges, 300) || !almostEqual(row.Taxes, 36) || !almostEqual(row.Total, 336) {
				t.Fatalf("check-in day revenue wrong: %+v", row)
			}
		default:
			if row.Total != 0 {
				t.Fatalf("%s should carry no revenue, got %+v", row.Date, row)
			}
		}
	}
}

func TestRoomTypePopularityAndTopGuests(t *testing.T) {
	reporting := seedReportingData(t)

	types, err := reporting.RoomTypePopularity(date(2024, 1, 1), date(2024, 1, 31))
	if err != nil {
		t.Fatalf("popularity: %v", err)
	}
	if len(types) != 1 || types[0].TypeName != "Standard" || types[0].Bookings != 1 || types[0].Nights != 3 {
		t.Fatalf("unexpected popularity rows: %+v", types)
	}
	if !almostEqual(types[0].Revenue, 300) {
		t.Fatalf("popularity revenue: want 300, got %v", types[0].Revenue)
	}

	guests, err := reporting.TopGuests(date(2024, 1, 1), date(2024, 1, 31), 5)
	if err != nil {
		t.Fatalf("top guests: %v", err)
	}
	if len(guests) != 1 || guests[0].Stays != 1 || guests[0].TotalNights != 3 {
		t.Fatalf("unexpected guest rows: %+v", guests)
	}
	if !almostEqual(guests[0].TotalSpent, 336) {
		t.Fatalf("guest spend: want 336, got %v", guests[0].TotalSpent)
	}
}

func TestReportRangeValidation(t *testing.T) {
	db := newTestDB(t)
	reporting := NewReportingService(db)

	if _, err := reporting.Summary(date(2024, 2, 1), date(2024, 1, 1)); err == nil {
		t.Fatalf("inverted range must be rejected")
	}
	if _, err := reporting.Occupancy(date(2024, 2, 1), date(2024, 1, 1)); err == nil {
		t.Fatalf("inverted range must be rejected")
	}
}
