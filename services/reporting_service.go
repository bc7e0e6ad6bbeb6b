package services

import (
	"math"
	"sort"
	"time"

	"hms-backend/models"

	"gorm.io/gorm"
)

// ReportingService is pure read-side aggregation over reservations,
// invoices and rooms; it introduces no new state or invariants.
type ReportingService struct {
	DB *gorm.DB
}

func NewReportingService(db *gorm.DB) *ReportingService {
	return &ReportingService{DB: db}
}

type OccupancyRow struct {
	Date          string  `json:"date"`
	TotalRooms    int64   `json:"totalRooms"`
	OccupiedRooms int64   `json:"occupiedRooms"`
	OccupancyRate float64 `json:"occupancyRate"`
}

type RevenueRow struct {
	Date              string  `json:"date"`
	RoomCharges       float64 `json:"roomCharges"`
	AdditionalCharges float64 `json:"additionalCharges"`
	Taxes             float64 `json:"taxes"`
	Total             float64 `json:"total"`
}

type RoomTypePopularityRow struct {
	TypeName string  `json:"typeName"`
	Bookings int     `json:"bookings"`
	Nights   int     `json:"nights"`
	Revenue  float64 `json:"revenue"`
}

type GuestStatsRow struct {
	GuestName   string  `json:"guestName"`
	Email       string  `json:"email"`
	Stays       int     `json:"stays"`
	TotalNights int     `json:"totalNights"`
	TotalSpent  float64 `json:"totalSpent"`
}

type SummaryReport struct {
	StartDate      string  `json:"startDate"`
	EndDate        string  `json:"endDate"`
	TotalRooms     int64   `json:"totalRooms"`
	Days           int     `json:"days"`
	RoomNightsSold int     `json:"roomNightsSold"`
	RoomRevenue    float64 `json:"roomRevenue"`
	OccupancyRate  float64 `json:"occupancyRate"`
	ADR            float64 `json:"adr"`
	RevPAR         float64 `json:"revPAR"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// stayReservations loads every non-cancelled reservation overlapping the
// half-open range [start, end+1d), the base set for all reports.
func (s *ReportingService) stayReservations(start, end time.Time) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.Preload("RoomType").
		Where("status <> ?", models.ReservationCancelled).
		Where("NOT (check_out_date <= ? OR check_in_date >= ?)", start, end.AddDate(0, 0, 1)).
		Find(&list).Error
	if err != nil {
		return nil, wrapDBErr(err, "load reservations for report")
	}
	return list, nil
}

func (s *ReportingService) invoicesByReservation(reservations []models.Reservation) (map[uint]models.Invoice, error) {
	ids := make([]uint, 0, len(reservations))
	for _, r := range reservations {
		ids = append(ids, r.ID)
	}
	byReservation := make(map[uint]models.Invoice, len(ids))
	if len(ids) == 0 {
		return byReservation, nil
	}

	var invoices []models.Invoice
	if err := s.DB.Where("reservation_id IN ?", ids).Find(&invoices).Error; err != nil {
		return nil, wrapDBErr(err, "load invoices for report")
	}
	for _, inv := range invoices {
		byReservation[inv.ReservationID] = inv
	}
	return byReservation, nil
}

// clampedNights counts the nights of r that fall inside [start, end+1d).
func clampedNights(r *models.Reservation, start, end time.Time) int {
	from := r.CheckInDate
	if from.Before(start) {
		from = start
	}
	to := r.CheckOutDate
	rangeEnd := end.AddDate(0, 0, 1)
	if to.After(rangeEnd) {
		to = rangeEnd
	}
	n := int(to.Sub(from).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// occupiedOn reports whether the stay covers the night of day d.
func occupiedOn(r *models.Reservation, d time.Time) bool {
	return !r.CheckInDate.After(d) && r.CheckOutDate.After(d)
}

// Occupancy returns one row per day with the share of rooms occupied
// that night.
func (s *ReportingService) Occupancy(start, end time.Time) ([]OccupancyRow, error) {
	start, end = truncateToDay(start), truncateToDay(end)
	if end.Before(start) {
		return nil, validationf("end date must not be before start date")
	}

	var totalRooms int64
	if err := s.DB.Model(&models.Room{}).Count(&totalRooms).Error; err != nil {
		return nil, wrapDBErr(err, "count rooms")
	}

	reservations, err := s.stayReservations(start, end)
	if err != nil {
		return nil, err
	}

	var rows []OccupancyRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		var occupied int64
		for i := range reservations {
			if occupiedOn(&reservations[i], d) {
				occupied++
			}
		}
		rate := 0.0
		if totalRooms > 0 {
			rate = round1(float64(occupied) / float64(totalRooms) * 100)
		}
		rows = append(rows, OccupancyRow{
			Date:          d.Format("2006-01-02"),
			TotalRooms:    totalRooms,
			OccupiedRooms: occupied,
			OccupancyRate: rate,
		})
	}
	return rows, nil
}

// Revenue returns one row per day; an invoice's amounts are attributed
// to its reservation's check-in date.
func (s *ReportingService) Revenue(start, end time.Time) ([]RevenueRow, error) {
	start, end = truncateToDay(start), truncateToDay(end)
	if end.Before(start) {
		return nil, validationf("end date must not be before start date")
	}

	reservations, err := s.stayReservations(start, end)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoicesByReservation(reservations)
	if err != nil {
		return nil, err
	}

	byDay := make(map[string]*RevenueRow)
	for i := range reservations {
		inv, ok := invoices[reservations[i].ID]
		if !ok {
			continue
		}
		key := reservations[i].CheckInDate.Format("2006-01-02")
		row, ok := byDay[key]
		if !ok {
			row = &RevenueRow{Date: key}
			byDay[key] = row
		}
		row.RoomCharges += inv.RoomCharges
		row.AdditionalCharges += inv.AdditionalCharges
		row.Taxes += inv.Taxes
		row.Total += inv.TotalAmount
	}

	var rows []RevenueRow
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		if row, ok := byDay[key]; ok {
			rows = append(rows, *row)
		} else {
			rows = append(rows, RevenueRow{Date: key})
		}
	}
	return rows, nil
}

// RoomTypePopularity aggregates bookings, nights and room revenue per
// room type for stays overlapping the range, busiest type first.
func (s *ReportingService) RoomTypePopularity(start, end time.Time) ([]RoomTypePopularityRow, error) {
	start, end = truncateToDay(start), truncateToDay(end)
	reservations, err := s.stayReservations(start, end)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoicesByReservation(reservations)
	if err != nil {
		return nil, err
	}

	byType := make(map[string]*RoomTypePopularityRow)
	for i := range reservations {
		r := &reservations[i]
		name := r.RoomType.TypeName
		row, ok := byType[name]
		if !ok {
			row = &RoomTypePopularityRow{TypeName: name}
			byType[name] = row
		}
		row.Bookings++
		row.Nights += clampedNights(r, start, end)
		if inv, ok := invoices[r.ID]; ok {
			row.Revenue += inv.RoomCharges
		}
	}

	rows := make([]RoomTypePopularityRow, 0, len(byType))
	for _, row := range byType {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Bookings != rows[j].Bookings {
			return rows[i].Bookings > rows[j].Bookings
		}
		return rows[i].TypeName < rows[j].TypeName
	})
	return rows, nil
}

// TopGuests ranks guests by total spend across their stays in the range.
func (s *ReportingService) TopGuests(start, end time.Time, limit int) ([]GuestStatsRow, error) {
	if limit <= 0 {
		limit = 10
	}
	start, end = truncateToDay(start), truncateToDay(end)
	reservations, err := s.stayReservations(start, end)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoicesByReservation(reservations)
	if err != nil {
		return nil, err
	}

	byGuest := make(map[string]*GuestStatsRow)
	for i := range reservations {
		r := &reservations[i]
		key := r.Email
		if key == "" {
			key = r.FirstName + " " + r.LastName
		}
		row, ok := byGuest[key]
		if !ok {
			row = &GuestStatsRow{
				GuestName: r.FirstName + " " + r.LastName,
				Email:     r.Email,
			}
			byGuest[key] = row
		}
		row.Stays++
		row.TotalNights += r.Nights()
		if inv, ok := invoices[r.ID]; ok {
			row.TotalSpent += inv.TotalAmount
		}
	}

	rows := make([]GuestStatsRow, 0, len(byGuest))
	for _, row := range byGuest {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalSpent != rows[j].TotalSpent {
			return rows[i].TotalSpent > rows[j].TotalSpent
		}
		return rows[i].GuestName < rows[j].GuestName
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// Summary computes the headline KPIs for the range:
// occupancy % = room-nights sold / (rooms x days) x 100,
// ADR = room revenue / room-nights sold,
// RevPAR = room revenue / (rooms x days).
func (s *ReportingService) Summary(start, end time.Time) (*SummaryReport, error) {
	start, end = truncateToDay(start), truncateToDay(end)
	if end.Before(start) {
		return nil, validationf("end date must not be before start date")
	}
	days := int(end.Sub(start).Hours()/24) + 1

	var totalRooms int64
	if err := s.DB.Model(&models.Room{}).Count(&totalRooms).Error; err != nil {
		return nil, wrapDBErr(err, "count rooms")
	}

	reservations, err := s.stayReservations(start, end)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoicesByReservation(reservations)
	if err != nil {
		return nil, err
	}

	roomNights := 0
	roomRevenue := 0.0
	for i := range reservations {
		roomNights += clampedNights(&reservations[i], start, end)
		if inv, ok := invoices[reservations[i].ID]; ok {
			roomRevenue += inv.RoomCharges
		}
	}

	report := &SummaryReport{
		StartDate:      start.Format("2006-01-02"),
		EndDate:        end.Format("2006-01-02"),
		TotalRooms:     totalRooms,
		Days:           days,
		RoomNightsSold: roomNights,
		RoomRevenue:    round2(roomRevenue),
	}
	if totalRooms > 0 && days > 0 {
		available := float64(totalRooms) * float64(days)
		report.OccupancyRate = round1(float64(roomNights) / available * 100)
		report.RevPAR = round2(roomRevenue / available)
	}
	if roomNights > 0 {
		report.ADR = round2(roomRevenue / float64(roomNights))
	}
	return report, nil
}
