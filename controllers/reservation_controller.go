package controllers

import (
	"net/http"
	"strconv"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	Service *services.ReservationService
}

func NewReservationController(s *services.ReservationService) *ReservationController {
	return &ReservationController{Service: s}
}

type createReservationRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CheckInDate     string `json:"checkInDate"`
	CheckOutDate    string `json:"checkOutDate"`
	RoomTypeID      uint   `json:"roomTypeId"`
	TotalGuests     int    `json:"totalGuests"`
	SpecialRequests string `json:"specialRequests"`
}

// CreateReservation handles POST /api/reservations.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	reservation, err := rc.Service.Create(services.CreateReservationInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		RoomTypeID:      req.RoomTypeID,
		TotalGuests:     req.TotalGuests,
		SpecialRequests: req.SpecialRequests,
		CreatedBy:       currentUsername(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, reservation)
}

// GetReservation handles GET /api/reservations/:id.
func (rc *ReservationController) GetReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.Service.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// GetByReference handles GET /api/reservations/by-reference/:code.
func (rc *ReservationController) GetByReference(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		utils.JSONError(c, http.StatusBadRequest, "reference code is required")
		return
	}
	reservation, err := rc.Service.GetByReference(code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// ListReservations handles GET /api/reservations?start=&end=.
func (rc *ReservationController) ListReservations(c *gin.Context) {
	start, end, err := parseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	list, err := rc.Service.ListByDateRange(start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, list)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PATCH /api/reservations/:id/status.
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}

	reservation, err := rc.Service.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// CancelReservation handles POST /api/reservations/:id/cancel.
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	reservation, err := rc.Service.Cancel(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, reservation)
}

// Availability handles GET /api/reservations/availability?checkIn=&checkOut=&roomTypeId=.
func (rc *ReservationController) Availability(c *gin.Context) {
	checkIn, err := parseDate(c.Query("checkIn"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	checkOut, err := parseDate(c.Query("checkOut"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var roomTypeID *uint
	if raw := c.Query("roomTypeId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid roomTypeId")
			return
		}
		id := uint(parsed)
		roomTypeID = &id
	}

	rooms, err := rc.Service.AvailableRooms(checkIn, checkOut, roomTypeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}
