package controllers

import (
	"net/http"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Service *services.RoomService
}

func NewRoomController(s *services.RoomService) *RoomController {
	return &RoomController{Service: s}
}

// ListRooms handles GET /api/rooms.
func (rc *RoomController) ListRooms(c *gin.Context) {
	rooms, err := rc.Service.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// GetRoom handles GET /api/rooms/:id.
func (rc *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	room, err := rc.Service.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// CreateRoom handles POST /api/rooms.
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var req services.RoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	room, err := rc.Service.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// UpdateRoom handles PATCH /api/rooms/:id.
func (rc *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.RoomInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	room, err := rc.Service.Update(id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

type roomStatusRequest struct {
	Status string `json:"status"`
}

// UpdateRoomStatus handles PATCH /api/rooms/:id/status.
func (rc *RoomController) UpdateRoomStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req roomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		utils.JSONError(c, http.StatusBadRequest, "status is required")
		return
	}
	room, err := rc.Service.UpdateStatus(id, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// DeleteRoom handles DELETE /api/rooms/:id.
func (rc *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := rc.Service.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
