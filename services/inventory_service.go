package services

import (
	"errors"
	"strings"
	"time"

	"hms-backend/models"

	"gorm.io/gorm"
)

type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

type InventoryItemInput struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Quantity     int     `json:"quantity"`
	UnitCost     float64 `json:"unitCost"`
	Supplier     string  `json:"supplier"`
	ReorderLevel int     `json:"reorderLevel"`
}

func (in *InventoryItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return validationf("item name is required")
	}
	if in.Quantity < 0 {
		return validationf("quantity cannot be negative")
	}
	if in.UnitCost < 0 {
		return validationf("unit cost cannot be negative")
	}
	if in.ReorderLevel < 0 {
		return validationf("reorder level cannot be negative")
	}
	return nil
}

// AddItem creates an item; a non-zero opening quantity is recorded in
// the audit log as initial stock.
func (s *InventoryService) AddItem(in InventoryItemInput) (*models.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	item := models.InventoryItem{
		Name:         strings.TrimSpace(in.Name),
		Category:     strings.TrimSpace(in.Category),
		Quantity:     in.Quantity,
		UnitCost:     in.UnitCost,
		Supplier:     strings.TrimSpace(in.Supplier),
		ReorderLevel: in.ReorderLevel,
	}
	if in.Quantity > 0 {
		now := time.Now()
		item.LastRestocked = &now
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		if item.Quantity > 0 {
			entry := models.InventoryLog{
				ItemID:       item.ID,
				ChangeAmount: item.Quantity,
				Notes:        "Initial stock",
			}
			return tx.Create(&entry).Error
		}
		return nil
	})
	if err != nil {
		return nil, wrapDBErr(err, "add inventory item")
	}
	return &item, nil
}

// UpdateItem replaces the editable fields; a quantity difference is
// logged with its signed delta so the audit trail stays complete.
func (s *InventoryService) UpdateItem(id uint, in InventoryItemInput) (*models.InventoryItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var item models.InventoryItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}

		delta := in.Quantity - item.Quantity

		updates := map[string]interface{}{
			"name":          strings.TrimSpace(in.Name),
			"category":      strings.TrimSpace(in.Category),
			"quantity":      in.Quantity,
			"unit_cost":     in.UnitCost,
			"supplier":      strings.TrimSpace(in.Supplier),
			"reorder_level": in.ReorderLevel,
		}
		if delta > 0 {
			now := time.Now()
			updates["last_restocked"] = &now
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return err
		}

		if delta != 0 {
			entry := models.InventoryLog{
				ItemID:       item.ID,
				ChangeAmount: delta,
				Notes:        "Manual adjustment via item update",
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrapDBErr(err, "update inventory item")
	}

	if err := s.DB.First(&item, id).Error; err != nil {
		return nil, wrapDBErr(err, "reload inventory item")
	}
	return &item, nil
}

// DeleteItem removes the item and its log entries together, keeping
// referential integrity without relying on database-side cascades.
func (s *InventoryService) DeleteItem(id uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id = ?", id).Delete(&models.InventoryLog{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		return wrapDBErr(err, "delete inventory item")
	}
	return nil
}

// AdjustQuantity applies a signed delta. A decrease below zero is
// rejected and leaves the quantity unchanged; an increase refreshes the
// last-restocked date. The delta is appended to the audit log in the
// same transaction.
func (s *InventoryService) AdjustQuantity(id uint, delta int, notes string) (*models.InventoryItem, error) {
	if delta == 0 {
		return nil, validationf("quantity delta must be non-zero")
	}

	var item models.InventoryItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}

		newQuantity := item.Quantity + delta
		if newQuantity < 0 {
			return validationf("cannot remove %d units: only %d in stock", -delta, item.Quantity)
		}

		updates := map[string]interface{}{"quantity": newQuantity}
		if delta > 0 {
			now := time.Now()
			updates["last_restocked"] = &now
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return err
		}

		entry := models.InventoryLog{
			ItemID:       item.ID,
			ChangeAmount: delta,
			Notes:        notes,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		item.Quantity = newQuantity
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrValidation) {
			return nil, err
		}
		return nil, wrapDBErr(err, "adjust inventory quantity")
	}
	return &item, nil
}

func (s *InventoryService) GetItem(id uint) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.DB.First(&item, id).Error; err != nil {
		return nil, wrapDBErr(err, "get inventory item")
	}
	return &item, nil
}

func (s *InventoryService) ListItems() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	if err := s.DB.Order("name ASC").Find(&items).Error; err != nil {
		return nil, wrapDBErr(err, "list inventory items")
	}
	return items, nil
}

// LowStock returns items at or below their reorder level.
func (s *InventoryService) LowStock() ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := s.DB.Where("quantity <= reorder_level").Order("name ASC").Find(&items).Error
	if err != nil {
		return nil, wrapDBErr(err, "list low stock items")
	}
	return items, nil
}

func (s *InventoryService) Logs(itemID uint) ([]models.InventoryLog, error) {
	var item models.InventoryItem
	if err := s.DB.First(&item, itemID).Error; err != nil {
		return nil, wrapDBErr(err, "get inventory item")
	}
	var logs []models.InventoryLog
	err := s.DB.Where("item_id = ?", itemID).Order("created_at DESC").Find(&logs).Error
	if err != nil {
		return nil, wrapDBErr(err, "list inventory logs")
	}
	return logs, nil
}
