package services

import (
	"errors"

	"hms-backend/models"

	"gorm.io/gorm"
)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// GetHotel returns the single hotel profile row, creating an empty one
// on first access.
func (s *SettingsService) GetHotel() (*models.HotelSetting, error) {
	var setting models.HotelSetting
	err := s.DB.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = models.HotelSetting{Name: "My Hotel"}
		if err := s.DB.Create(&setting).Error; err != nil {
			return nil, wrapDBErr(err, "create hotel settings")
		}
		return &setting, nil
	}
	if err != nil {
		return nil, wrapDBErr(err, "get hotel settings")
	}
	return &setting, nil
}

func (s *SettingsService) UpdateHotel(in models.HotelSetting) (*models.HotelSetting, error) {
	setting, err := s.GetHotel()
	if err != nil {
		return nil, err
	}

	setting.Name = in.Name
	setting.Address = in.Address
	setting.Phone = in.Phone
	setting.Email = in.Email
	setting.Website = in.Website

	if err := s.DB.Save(setting).Error; err != nil {
		return nil, wrapDBErr(err, "update hotel settings")
	}
	return setting, nil
}
