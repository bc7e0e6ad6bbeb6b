package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"hms-backend/config"
	"hms-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database per test and applies the
// full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seedRoomType inserts a type plus n rooms of it and returns the ids.
func seedRoomType(t *testing.T, db *gorm.DB, name string, rate float64, maxGuests, n int) (uint, []uint) {
	t.Helper()

	rt := models.RoomType{TypeName: name, BaseRate: rate, MaxGuests: maxGuests}
	if err := db.Create(&rt).Error; err != nil {
		t.Fatalf("seed room type: %v", err)
	}

	roomIDs := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		typeID := rt.ID
		room := models.Room{
			RoomNumber: fmt.Sprintf("%s-%d", name, i+1),
			RoomTypeID: &typeID,
			Floor:      "1",
			Status:     models.RoomAvailable,
		}
		if err := db.Create(&room).Error; err != nil {
			t.Fatalf("seed room: %v", err)
		}
		roomIDs = append(roomIDs, room.ID)
	}
	return rt.ID, roomIDs
}

func mustCreateReservation(t *testing.T, svc *ReservationService, roomTypeID uint, checkIn, checkOut time.Time) *models.Reservation {
	t.Helper()

	r, err := svc.Create(CreateReservationInput{
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "john.doe@example.com",
		Phone:        "555-0100",
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		RoomTypeID:   roomTypeID,
		TotalGuests:  1,
	})
	if err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return r
}
