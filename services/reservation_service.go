package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hms-backend/models"
	"hms-backend/utils"

	"gorm.io/gorm"
)

type ReservationService struct {
	DB *gorm.DB
}

func NewReservationService(db *gorm.DB) *ReservationService {
	return &ReservationService{DB: db}
}

// reservationTransitions is the full set of legal status changes.
// Anything not listed is rejected and leaves the row untouched.
var reservationTransitions = map[string][]string{
	models.ReservationConfirmed: {models.ReservationCheckedIn, models.ReservationCancelled},
	models.ReservationCheckedIn: {models.ReservationCheckedOut},
}

func transitionAllowed(from, to string) bool {
	for _, t := range reservationTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// blockingStatuses are the reservation states that hold a room against
// other bookings. Cancelled and checked-out stays never conflict.
var blockingStatuses = []string{models.ReservationConfirmed, models.ReservationCheckedIn}

type CreateReservationInput struct {
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	CheckInDate     time.Time `json:"checkInDate"`
	CheckOutDate    time.Time `json:"checkOutDate"`
	RoomTypeID      uint      `json:"roomTypeId"`
	TotalGuests     int       `json:"totalGuests"`
	SpecialRequests string    `json:"specialRequests"`
	CreatedBy       string    `json:"createdBy"`
}

// truncateToDay drops the time-of-day component; reservations are kept
// at date granularity so the half-open overlap test works on midnights.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// conflictingReservations narrows q to reservations that would block the
// half-open interval [checkIn, checkOut). A stay ending on day D does not
// conflict with one starting on day D.
func conflictingReservations(tx *gorm.DB, checkIn, checkOut time.Time) *gorm.DB {
	return tx.Model(&models.Reservation{}).
		Where("room_id IS NOT NULL").
		Where("status IN ?", blockingStatuses).
		Where("NOT (check_out_date <= ? OR check_in_date >= ?)", checkIn, checkOut)
}

// Create validates the request, finds a free room of the requested type
// and persists the reservation as Confirmed with that room assigned.
// Returns ErrConflict when every room of the type is taken for the range.
func (s *ReservationService) Create(in CreateReservationInput) (*models.Reservation, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return nil, validationf("guest first and last name are required")
	}
	if in.TotalGuests <= 0 {
		return nil, validationf("total guests must be at least 1")
	}
	if in.CheckInDate.IsZero() || in.CheckOutDate.IsZero() {
		return nil, validationf("check-in and check-out dates are required")
	}

	checkIn := truncateToDay(in.CheckInDate)
	checkOut := truncateToDay(in.CheckOutDate)
	if !checkOut.After(checkIn) {
		return nil, validationf("check-out must be after check-in")
	}

	var reservation models.Reservation

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var roomType models.RoomType
		if err := tx.First(&roomType, in.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return validationf("room type %d does not exist", in.RoomTypeID)
			}
			return err
		}
		if roomType.MaxGuests > 0 && in.TotalGuests > roomType.MaxGuests {
			return validationf("room type %q sleeps at most %d guests", roomType.TypeName, roomType.MaxGuests)
		}

		taken := conflictingReservations(tx, checkIn, checkOut).Select("room_id")

		var room models.Room
		err := tx.
			Where("room_type_id = ?", in.RoomTypeID).
			Where("id NOT IN (?)", taken).
			Order("room_number ASC").
			First(&room).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return conflictf("no %s room available for the requested dates", roomType.TypeName)
			}
			return err
		}

		roomID := room.ID
		reservation = models.Reservation{
			ReferenceCode:   utils.GenerateReferenceCode(),
			FirstName:       strings.TrimSpace(in.FirstName),
			LastName:        strings.TrimSpace(in.LastName),
			Email:           strings.TrimSpace(in.Email),
			Phone:           strings.TrimSpace(in.Phone),
			CheckInDate:     checkIn,
			CheckOutDate:    checkOut,
			Status:          models.ReservationConfirmed,
			TotalGuests:     in.TotalGuests,
			RoomTypeID:      in.RoomTypeID,
			RoomID:          &roomID,
			SpecialRequests: in.SpecialRequests,
			CreatedBy:       in.CreatedBy,
		}
		return tx.Create(&reservation).Error
	})
	if err != nil {
		if errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) {
			return nil, err
		}
		return nil, wrapDBErr(err, "create reservation")
	}

	if err := s.DB.Preload("Room").Preload("RoomType").First(&reservation, reservation.ID).Error; err != nil {
		return nil, wrapDBErr(err, "reload reservation")
	}
	return &reservation, nil
}

func (s *ReservationService) GetByID(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.Preload("Room").Preload("RoomType").First(&r, id).Error; err != nil {
		return nil, wrapDBErr(err, "get reservation")
	}
	return &r, nil
}

func (s *ReservationService) GetByReference(code string) (*models.Reservation, error) {
	var r models.Reservation
	err := s.DB.Preload("Room").Preload("RoomType").
		Where("reference_code = ?", code).
		First(&r).Error
	if err != nil {
		return nil, wrapDBErr(err, "get reservation by reference")
	}
	return &r, nil
}

// ListByDateRange returns reservations checking in within [start, end],
// newest check-in first.
func (s *ReservationService) ListByDateRange(start, end time.Time) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.Preload("Room").Preload("RoomType").
		Where("check_in_date >= ? AND check_in_date <= ?", truncateToDay(start), truncateToDay(end)).
		Order("check_in_date DESC").
		Find(&list).Error
	if err != nil {
		return nil, wrapDBErr(err, "list reservations")
	}
	return list, nil
}

// UpdateStatus applies a legal transition and its room side effects:
// check-in marks the room Occupied, check-out sends it to Cleaning.
func (s *ReservationService) UpdateStatus(id uint, newStatus string) (*models.Reservation, error) {
	var reservation models.Reservation

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reservation, id).Error; err != nil {
			return err
		}
		if !transitionAllowed(reservation.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, newStatus)
		}

		if err := tx.Model(&reservation).Update("status", newStatus).Error; err != nil {
			return err
		}

		if reservation.RoomID != nil {
			var roomStatus string
			switch newStatus {
			case models.ReservationCheckedIn:
				roomStatus = models.RoomOccupied
			case models.ReservationCheckedOut:
				roomStatus = models.RoomCleaning
			}
			if roomStatus != "" {
				if err := tx.Model(&models.Room{}).
					Where("id = ?", *reservation.RoomID).
					Update("status", roomStatus).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return nil, err
		}
		return nil, wrapDBErr(err, "update reservation status")
	}

	reservation.Status = newStatus
	return &reservation, nil
}

// Cancel is only legal from Confirmed; checked-in and checked-out stays
// cannot be cancelled.
func (s *ReservationService) Cancel(id uint) (*models.Reservation, error) {
	return s.UpdateStatus(id, models.ReservationCancelled)
}

// AvailableRooms lists every room free for [checkIn, checkOut), optionally
// restricted to one room type.
func (s *ReservationService) AvailableRooms(checkIn, checkOut time.Time, roomTypeID *uint) ([]models.Room, error) {
	ci := truncateToDay(checkIn)
	co := truncateToDay(checkOut)
	if !co.After(ci) {
		return nil, validationf("check-out must be after check-in")
	}

	taken := conflictingReservations(s.DB, ci, co).Select("room_id")

	q := s.DB.Preload("RoomType").Where("id NOT IN (?)", taken)
	if roomTypeID != nil {
		q = q.Where("room_type_id = ?", *roomTypeID)
	}

	var rooms []models.Room
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, wrapDBErr(err, "list available rooms")
	}
	return rooms, nil
}
