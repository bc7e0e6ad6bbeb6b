package controllers

import (
	"net/http"
	"strconv"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Service *services.ReportingService
}

func NewReportController(s *services.ReportingService) *ReportController {
	return &ReportController{Service: s}
}

// Occupancy handles GET /api/reports/occupancy?start=&end=.
func (rc *ReportController) Occupancy(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := rc.Service.Occupancy(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// Revenue handles GET /api/reports/revenue?start=&end=.
func (rc *ReportController) Revenue(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := rc.Service.Revenue(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// RoomTypePopularity handles GET /api/reports/room-types?start=&end=.
func (rc *ReportController) RoomTypePopularity(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := rc.Service.RoomTypePopularity(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// TopGuests handles GET /api/reports/guests?start=&end=&limit=.
func (rc *ReportController) TopGuests(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	rows, err := rc.Service.TopGuests(start, end, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// Summary handles GET /api/reports/summary?start=&end=.
func (rc *ReportController) Summary(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	report, err := rc.Service.Summary(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, report)
}
