package controllers

import (
	"net/http"

	"hms-backend/models"
	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Service *services.SettingsService
}

func NewSettingsController(s *services.SettingsService) *SettingsController {
	return &SettingsController{Service: s}
}

// GetHotelSettings handles GET /api/settings/hotel.
func (sc *SettingsController) GetHotelSettings(c *gin.Context) {
	setting, err := sc.Service.GetHotel()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}

// UpdateHotelSettings handles PUT /api/settings/hotel.
func (sc *SettingsController) UpdateHotelSettings(c *gin.Context) {
	var req models.HotelSetting
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	setting, err := sc.Service.UpdateHotel(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, setting)
}
