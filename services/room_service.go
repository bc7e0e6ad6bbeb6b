package services

import (
	"errors"
	"strings"
	"time"

	"hms-backend/models"

	"gorm.io/gorm"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type RoomInput struct {
	RoomNumber string `json:"roomNumber"`
	RoomTypeID *uint  `json:"roomTypeId"`
	Floor      string `json:"floor"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}

func (s *RoomService) Create(in RoomInput) (*models.Room, error) {
	number := strings.TrimSpace(in.RoomNumber)
	if number == "" {
		return nil, validationf("room number is required")
	}

	status := in.Status
	if status == "" {
		status = models.RoomAvailable
	}
	if !models.ValidRoomStatus(status) {
		return nil, validationf("unknown room status %q", status)
	}

	if in.RoomTypeID != nil {
		var rt models.RoomType
		if err := s.DB.First(&rt, *in.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationf("room type %d does not exist", *in.RoomTypeID)
			}
			return nil, wrapDBErr(err, "check room type")
		}
	}

	room := models.Room{
		RoomNumber: number,
		RoomTypeID: in.RoomTypeID,
		Floor:      strings.TrimSpace(in.Floor),
		Status:     status,
		Notes:      in.Notes,
	}
	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, conflictf("room number %q already exists", number)
		}
		return nil, wrapDBErr(err, "create room")
	}
	return &room, nil
}

func (s *RoomService) Get(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, wrapDBErr(err, "get room")
	}
	return &room, nil
}

func (s *RoomService) List() ([]models.Room, error) {
	var rooms []models.Room
	if err := s.DB.Preload("RoomType").Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, wrapDBErr(err, "list rooms")
	}
	return rooms, nil
}

func (s *RoomService) Update(id uint, in RoomInput) (*models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		return nil, wrapDBErr(err, "get room")
	}

	updates := map[string]interface{}{}
	if n := strings.TrimSpace(in.RoomNumber); n != "" && n != room.RoomNumber {
		updates["room_number"] = n
	}
	if in.RoomTypeID != nil {
		var rt models.RoomType
		if err := s.DB.First(&rt, *in.RoomTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, validationf("room type %d does not exist", *in.RoomTypeID)
			}
			return nil, wrapDBErr(err, "check room type")
		}
		updates["room_type_id"] = *in.RoomTypeID
	}
	if f := strings.TrimSpace(in.Floor); f != "" {
		updates["floor"] = f
	}
	if in.Notes != "" {
		updates["notes"] = in.Notes
	}

	if len(updates) > 0 {
		if err := s.DB.Model(&room).Updates(updates).Error; err != nil {
			if isDuplicateKeyErr(err) {
				return nil, conflictf("room number %q already exists", in.RoomNumber)
			}
			return nil, wrapDBErr(err, "update room")
		}
	}

	if err := s.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, wrapDBErr(err, "reload room")
	}
	return &room, nil
}

// UpdateStatus moves a room through its housekeeping lifecycle. Leaving
// Cleaning for Available stamps the last-cleaned time.
func (s *RoomService) UpdateStatus(id uint, status string) (*models.Room, error) {
	if !models.ValidRoomStatus(status) {
		return nil, validationf("unknown room status %q", status)
	}

	var room models.Room
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&room, id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{"status": status}
		if room.Status == models.RoomCleaning && status == models.RoomAvailable {
			now := time.Now()
			updates["last_cleaned"] = &now
		}
		return tx.Model(&room).Updates(updates).Error
	})
	if err != nil {
		return nil, wrapDBErr(err, "update room status")
	}

	if err := s.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		return nil, wrapDBErr(err, "reload room")
	}
	return &room, nil
}

// Delete refuses to remove a room that still has blocking reservations.
func (s *RoomService) Delete(id uint) error {
	var count int64
	err := s.DB.Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", id, blockingStatuses).
		Count(&count).Error
	if err != nil {
		return wrapDBErr(err, "check room reservations")
	}
	if count > 0 {
		return conflictf("room has %d active reservation(s)", count)
	}

	result := s.DB.Delete(&models.Room{}, id)
	if result.Error != nil {
		return wrapDBErr(result.Error, "delete room")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
