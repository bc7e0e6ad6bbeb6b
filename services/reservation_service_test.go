package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"hms-backend/models"
)

func TestCreateReservationRejectsBadDates(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 1)
	svc := NewReservationService(db)

	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"checkout equals checkin", date(2024, 1, 10), date(2024, 1, 10)},
		{"checkout before checkin", date(2024, 1, 10), date(2024, 1, 9)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(CreateReservationInput{
				FirstName:    "John",
				LastName:     "Doe",
				CheckInDate:  tc.checkIn,
				CheckOutDate: tc.checkOut,
				RoomTypeID:   typeID,
				TotalGuests:  1,
			})
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateReservationAssignsRoom(t *testing.T) {
	db := newTestDB(t)
	typeID, roomIDs := seedRoomType(t, db, "Standard", 100, 2, 1)
	svc := NewReservationService(db)

	r := mustCreateReservation(t, svc, typeID, date(2024, 1, 10), date(2024, 1, 13))

	if r.Status != models.ReservationConfirmed {
		t.Fatalf("expected status Confirmed, got %q", r.Status)
	}
	if r.RoomID == nil || *r.RoomID != roomIDs[0] {
		t.Fatalf("expected room %d assigned, got %v", roomIDs[0], r.RoomID)
	}
	if !strings.HasPrefix(r.ReferenceCode, "RES-") {
		t.Fatalf("unexpected reference code %q", r.ReferenceCode)
	}
	if n := r.Nights(); n != 3 {
		t.Fatalf("expected 3 nights, got %d", n)
	}

	byRef, err := svc.GetByReference(r.ReferenceCode)
	if err != nil {
		t.Fatalf("get by reference: %v", err)
	}
	if byRef.ID != r.ID {
		t.Fatalf("reference lookup returned the wrong reservation")
	}
	if _, err := svc.GetByReference("RES-NOPE"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown reference: expected ErrNotFound, got %v", err)
	}
}

func TestCreateReservationGuestCapacity(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 1)
	svc := NewReservationService(db)

	_, err := svc.Create(CreateReservationInput{
		FirstName:    "John",
		LastName:     "Doe",
		CheckInDate:  date(2024, 1, 10),
		CheckOutDate: date(2024, 1, 11),
		RoomTypeID:   typeID,
		TotalGuests:  5,
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for over-capacity party, got %v", err)
	}
}

func TestAvailabilityHalfOpenBoundary(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 1)
	svc := NewReservationService(db)

	mustCreateReservation(t, svc, typeID, date(2024, 1, 10), date(2024, 1, 13))

	// Back-to-back: checkout on the 13th does not conflict with a
	// check-in on the 13th.
	if _, err := svc.Create(CreateReservationInput{
		FirstName:    "Jane",
		LastName:     "Roe",
		CheckInDate:  date(2024, 1, 13),
		CheckOutDate: date(2024, 1, 15),
		RoomTypeID:   typeID,
		TotalGuests:  1,
	}); err != nil {
		t.Fatalf("back-to-back booking should succeed, got %v", err)
	}

	// Any genuine overlap conflicts.
	overlaps := [][2]time.Time{
		{date(2024, 1, 9), date(2024, 1, 11)},  // overlaps start
		{date(2024, 1, 11), date(2024, 1, 12)}, // inside
		{date(2024, 1, 12), date(2024, 1, 14)}, // overlaps end
		{date(2024, 1, 9), date(2024, 1, 14)},  // covers
	}
	for _, ov := range overlaps {
		_, err := svc.Create(CreateReservationInput{
			FirstName:    "Jane",
			LastName:     "Roe",
			CheckInDate:  ov[0],
			CheckOutDate: ov[1],
			RoomTypeID:   typeID,
			TotalGuests:  1,
		})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("overlap %v-%v: expected ErrConflict, got %v", ov[0], ov[1], err)
		}
	}
}

func TestCancelledReservationFreesRoom(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 1)
	svc := NewReservationService(db)

	r := mustCreateReservation(t, svc, typeID, date(2024, 1, 10), date(2024, 1, 13))
	if _, err := svc.Cancel(r.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	// Same dates are bookable again once the blocking stay is gone.
	mustCreateReservation(t, svc, typeID, date(2024, 1, 10), date(2024, 1, 13))
}

func TestStatusTransitionDAG(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 4)
	svc := NewReservationService(db)

	t.Run("happy path", func(t *testing.T) {
		r := mustCreateReservation(t, svc, typeID, date(2024, 2, 1), date(2024, 2, 3))

		updated, err := svc.UpdateStatus(r.ID, models.ReservationCheckedIn)
		if err != nil {
			t.Fatalf("check-in: %v", err)
		}
		if updated.Status != models.ReservationCheckedIn {
			t.Fatalf("expected Checked-In, got %q", updated.Status)
		}

		var room models.Room
		if err := db.First(&room, *r.RoomID).Error; err != nil {
			t.Fatalf("load room: %v", err)
		}
		if room.Status != models.RoomOccupied {
			t.Fatalf("expected room Occupied after check-in, got %q", room.Status)
		}

		if _, err := svc.UpdateStatus(r.ID, models.ReservationCheckedOut); err != nil {
			t.Fatalf("check-out: %v", err)
		}
		if err := db.First(&room, *r.RoomID).Error; err != nil {
			t.Fatalf("load room: %v", err)
		}
		if room.Status != models.RoomCleaning {
			t.Fatalf("expected room Cleaning after check-out, got %q", room.Status)
		}
	})

	t.Run("illegal transitions leave state unchanged", func(t *testing.T) {
		r := mustCreateReservation(t, svc, typeID, date(2024, 3, 1), date(2024, 3, 3))

		illegal := []string{models.ReservationCheckedOut, models.ReservationConfirmed}
		for _, to := range illegal {
			if _, err := svc.UpdateStatus(r.ID, to); !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Confirmed -> %s: expected ErrInvalidTransition, got %v", to, err)
			}
		}

		got, err := svc.GetByID(r.ID)
		if err != nil {
			t.Fatalf("reload: %v", err)
		}
		if got.Status != models.ReservationConfirmed {
			t.Fatalf("status changed despite rejected transition: %q", got.Status)
		}
	})

	t.Run("cancel only from confirmed", func(t *testing.T) {
		r := mustCreateReservation(t, svc, typeID, date(2024, 4, 1), date(2024, 4, 3))
		if _, err := svc.UpdateStatus(r.ID, models.ReservationCheckedIn); err != nil {
			t.Fatalf("check-in: %v", err)
		}
		if _, err := svc.Cancel(r.ID); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("cancel of checked-in stay: expected ErrInvalidTransition, got %v", err)
		}

		if _, err := svc.UpdateStatus(r.ID, models.ReservationCheckedOut); err != nil {
			t.Fatalf("check-out: %v", err)
		}
		if _, err := svc.Cancel(r.ID); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("cancel of checked-out stay: expected ErrInvalidTransition, got %v", err)
		}
	})
}

func TestUpdateStatusNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewReservationService(db)

	if _, err := svc.UpdateStatus(9999, models.ReservationCheckedIn); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListByDateRangeOrder(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 3)
	svc := NewReservationService(db)

	mustCreateReservation(t, svc, typeID, date(2024, 1, 5), date(2024, 1, 6))
	mustCreateReservation(t, svc, typeID, date(2024, 1, 20), date(2024, 1, 22))
	mustCreateReservation(t, svc, typeID, date(2024, 2, 10), date(2024, 2, 12))

	list, err := svc.ListByDateRange(date(2024, 1, 1), date(2024, 1, 31))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 reservations in January, got %d", len(list))
	}
	if list[0].CheckInDate.Before(list[1].CheckInDate) {
		t.Fatalf("expected newest check-in first")
	}
}

func TestAvailableRooms(t *testing.T) {
	db := newTestDB(t)
	typeID, _ := seedRoomType(t, db, "Standard", 100, 2, 2)
	svc := NewReservationService(db)

	r := mustCreateReservation(t, svc, typeID, date(2024, 1, 10), date(2024, 1, 13))

	rooms, err := svc.AvailableRooms(date(2024, 1, 11), date(2024, 1, 12), &typeID)
	if err != nil {
		t.Fatalf("available rooms: %v", err)
	}
	if len(rooms) != 1 {
		t.Fatalf("expected 1 free room, got %d", len(rooms))
	}
	if rooms[0].ID == *r.RoomID {
		t.Fatalf("booked room %d listed as available", *r.RoomID)
	}
}
