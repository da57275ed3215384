package models

import (
	"context"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/shopspring/decimal"
)

type InventoryItem struct {
	UUIDBase
	Name         string          `gorm:"size:255;not null" json:"name"`
	Category     string          `gorm:"size:100" json:"category"`
	Unit         string          `gorm:"size:30" json:"unit"`
	Quantity     int             `gorm:"default:0" json:"quantity"`
	ReorderPoint int             `gorm:"default:0" json:"reorder_point"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_cost"`
	SupplierName string          `gorm:"size:255" json:"supplier_name"`
	UserId       string          `gorm:"type:char(36);index" json:"user_id"`
}

type NewInventoryItem struct {
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Quantity     int             `json:"quantity"`
	ReorderPoint int             `json:"reorder_point"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	SupplierName string          `json:"supplier_name"`
}

func CreateInventoryItem(ctx context.Context, input *NewInventoryItem) (*InventoryItem, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	item := InventoryItem{
		Name:         input.Name,
		Category:     input.Category,
		Unit:         input.Unit,
		Quantity:     input.Quantity,
		ReorderPoint: input.ReorderPoint,
		UnitCost:     input.UnitCost,
		SupplierName: input.SupplierName,
		UserId:       userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func UpdateInventoryItem(ctx context.Context, id string, input *NewInventoryItem) (*InventoryItem, error) {
	item, err := utils.FetchModel[InventoryItem](ctx, id)
	if err != nil {
		return nil, err
	}
	item.Name = input.Name
	item.Category = input.Category
	item.Unit = input.Unit
	item.Quantity = input.Quantity
	item.ReorderPoint = input.ReorderPoint
	item.UnitCost = input.UnitCost
	item.SupplierName = input.SupplierName

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func GetInventoryItems(ctx context.Context) ([]*InventoryItem, error) {
	return utils.FetchAllModels[InventoryItem](ctx)
}

func GetInventoryItem(ctx context.Context, id string) (*InventoryItem, error) {
	return utils.FetchModel[InventoryItem](ctx, id)
}

func DeleteInventoryItem(ctx context.Context, id string) (*InventoryItem, error) {
	return utils.DeleteModel[InventoryItem](ctx, id)
}
