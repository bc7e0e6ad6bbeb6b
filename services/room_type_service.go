package services

import (
	"encoding/json"
	"strings"

	"hms-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

type RoomTypeInput struct {
	TypeName    string   `json:"typeName"`
	Description string   `json:"description"`
	BaseRate    float64  `json:"baseRate"`
	MaxGuests   int      `json:"maxGuests"`
	Amenities   []string `json:"amenities"`
}

func (in *RoomTypeInput) toModel() (*models.RoomType, error) {
	name := strings.TrimSpace(in.TypeName)
	if name == "" {
		return nil, validationf("type name is required")
	}
	if in.BaseRate < 0 {
		return nil, validationf("base rate cannot be negative")
	}
	if in.MaxGuests <= 0 {
		return nil, validationf("max guests must be at least 1")
	}

	rt := &models.RoomType{
		TypeName:    name,
		Description: in.Description,
		BaseRate:    in.BaseRate,
		MaxGuests:   in.MaxGuests,
	}
	if len(in.Amenities) > 0 {
		raw, err := json.Marshal(in.Amenities)
		if err != nil {
			return nil, validationf("invalid amenities list")
		}
		rt.Amenities = datatypes.JSON(raw)
	}
	return rt, nil
}

func (s *RoomTypeService) Create(in RoomTypeInput) (*models.RoomType, error) {
	rt, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if err := s.DB.Create(rt).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, conflictf("room type %q already exists", rt.TypeName)
		}
		return nil, wrapDBErr(err, "create room type")
	}
	return rt, nil
}

func (s *RoomTypeService) Get(id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.First(&rt, id).Error; err != nil {
		return nil, wrapDBErr(err, "get room type")
	}
	return &rt, nil
}

func (s *RoomTypeService) List() ([]models.RoomType, error) {
	var types []models.RoomType
	if err := s.DB.Order("type_name ASC").Find(&types).Error; err != nil {
		return nil, wrapDBErr(err, "list room types")
	}
	return types, nil
}

func (s *RoomTypeService) Update(id uint, in RoomTypeInput) (*models.RoomType, error) {
	updated, err := in.toModel()
	if err != nil {
		return nil, err
	}

	var rt models.RoomType
	if err := s.DB.First(&rt, id).Error; err != nil {
		return nil, wrapDBErr(err, "get room type")
	}

	rt.TypeName = updated.TypeName
	rt.Description = updated.Description
	rt.BaseRate = updated.BaseRate
	rt.MaxGuests = updated.MaxGuests
	rt.Amenities = updated.Amenities

	if err := s.DB.Save(&rt).Error; err != nil {
		if isDuplicateKeyErr(err) {
			return nil, conflictf("room type %q already exists", rt.TypeName)
		}
		return nil, wrapDBErr(err, "update room type")
	}
	return &rt, nil
}

// Delete refuses to remove a type still referenced by rooms.
func (s *RoomTypeService) Delete(id uint) error {
	var count int64
	if err := s.DB.Model(&models.Room{}).Where("room_type_id = ?", id).Count(&count).Error; err != nil {
		return wrapDBErr(err, "check rooms of type")
	}
	if count > 0 {
		return conflictf("%d room(s) still use this room type", count)
	}

	result := s.DB.Delete(&models.RoomType{}, id)
	if result.Error != nil {
		return wrapDBErr(result.Error, "delete room type")
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
