package controllers

import (
	"net/http"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type InventoryController struct {
	Service *services.InventoryService
}

func NewInventoryController(s *services.InventoryService) *InventoryController {
	return &InventoryController{Service: s}
}

// ListItems handles GET /api/inventory.
func (ic *InventoryController) ListItems(c *gin.Context) {
	items, err := ic.Service.ListItems()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

// LowStock handles GET /api/inventory/low-stock.
func (ic *InventoryController) LowStock(c *gin.Context) {
	items, err := ic.Service.LowStock()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, items)
}

// GetItem handles GET /api/inventory/:id.
func (ic *InventoryController) GetItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	item, err := ic.Service.GetItem(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}

// CreateItem handles POST /api/inventory.
func (ic *InventoryController) CreateItem(c *gin.Context) {
	var req services.InventoryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	item, err := ic.Service.AddItem(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, item)
}

// UpdateItem handles PUT /api/inventory/:id.
func (ic *InventoryController) UpdateItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req services.InventoryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	item, err := ic.Service.UpdateItem(id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}

// DeleteItem handles DELETE /api/inventory/:id.
func (ic *InventoryController) DeleteItem(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := ic.Service.DeleteItem(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}

type adjustQuantityRequest struct {
	Delta int    `json:"delta"`
	Notes string `json:"notes"`
}

// AdjustQuantity handles POST /api/inventory/:id/adjust.
func (ic *InventoryController) AdjustQuantity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req adjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}
	item, err := ic.Service.AdjustQuantity(id, req.Delta, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, item)
}

// ItemLogs handles GET /api/inventory/:id/logs.
func (ic *InventoryController) ItemLogs(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	logs, err := ic.Service.Logs(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}
