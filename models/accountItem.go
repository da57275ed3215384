package models

import (
	"context"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
)

// AccountItem is an account ledger entry definition used when posting
// journals. Items are deactivated instead of deleted so historic journal
// lines keep resolving.
type AccountItem struct {
	UUIDBase
	Code     string   `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name     string   `gorm:"size:255;not null" json:"name"`
	Category string   `gorm:"size:100" json:"category"`
	CostType CostType `gorm:"size:1" json:"cost_type"`
	IsActive *bool    `gorm:"not null;default:true" json:"is_active"`
}

type NewAccountItem struct {
	Code     string   `json:"code" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Category string   `json:"category"`
	CostType CostType `json:"cost_type"`
}

// SaveAccountItem upserts by code so re-seeding the chart of accounts is
// idempotent.
func SaveAccountItem(ctx context.Context, input *NewAccountItem) (*AccountItem, error) {
	db := config.GetDB()
	var item AccountItem
	err := db.WithContext(ctx).Where("code = ?", input.Code).First(&item).Error
	if err == nil {
		item.Name = input.Name
		item.Category = input.Category
		item.CostType = input.CostType
		item.IsActive = utils.NewTrue()
		if err := db.WithContext(ctx).Save(&item).Error; err != nil {
			return nil, err
		}
		return &item, nil
	}

	item = AccountItem{
		Code:     input.Code,
		Name:     input.Name,
		Category: input.Category,
		CostType: input.CostType,
		IsActive: utils.NewTrue(),
	}
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func DeactivateAccountItem(ctx context.Context, id string) (*AccountItem, error) {
	item, err := utils.FetchModel[AccountItem](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(item).Update("is_active", false).Error; err != nil {
		return nil, err
	}
	return item, nil
}

func GetAccountItems(ctx context.Context) ([]*AccountItem, error) {
	return utils.FetchAllModels[AccountItem](ctx)
}
