package controllers

import (
	"net/http"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type RoomTypeController struct {
	Service *services.RoomTypeService
}

func NewRoomTypeController(s *services.RoomTypeService) *RoomTypeController {
	return &RoomTypeController{Service: s}
}

// ListRoomTypes handles GET /api/room-types.
func (tc *RoomTypeController) ListRoomTypes(c *gin.Context) {
	types, err := tc.Service.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

// GetRoomType handles GET /api/room-types/:id.
func (tc *RoomTypeController) GetRoomType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rt, err := tc.Service.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

// CreateRoomType handles POST /api/room-types.
func (tc *RoomTypeController) CreateRoomType(c *gin.Context) {
	var req services.RoomTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	rt, err := tc.Service.Create(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rt)
}

// UpdateRoomType handles PUT /api/room-types/:id.
func (tc *RoomTypeController) UpdateRoomType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.RoomTypeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	rt, err := tc.Service.Update(id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rt)
}

// DeleteRoomType handles DELETE /api/room-types/:id.
func (tc *RoomTypeController) DeleteRoomType(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := tc.Service.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
