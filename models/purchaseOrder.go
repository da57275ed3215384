package models

import (
	"context"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseOrder struct {
	UUIDBase
	SupplierName    string              `gorm:"size:255;not null" json:"supplier_name"`
	ItemName        string              `gorm:"size:255;not null" json:"item_name"`
	Quantity        int                 `gorm:"default:0" json:"quantity"`
	UnitPrice       decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"total_amount"`
	Status          PurchaseOrderStatus `gorm:"size:20;not null" json:"status"`
	OrderedAt       time.Time           `json:"ordered_at"`
	ReceivedAt      *time.Time          `gorm:"default:null" json:"received_at"`
	InventoryItemId *string             `gorm:"type:char(36);index;default:null" json:"inventory_item_id"`
	JobId           *string             `gorm:"type:char(36);index;default:null" json:"job_id"`
	UserId          string              `gorm:"type:char(36);index" json:"user_id"`
}

type NewPurchaseOrder struct {
	SupplierName    string          `json:"supplier_name" binding:"required"`
	ItemName        string          `json:"item_name" binding:"required"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	InventoryItemId *string         `json:"inventory_item_id"`
	JobId           *string         `json:"job_id"`
}

func CreatePurchaseOrder(ctx context.Context, input *NewPurchaseOrder) (*PurchaseOrder, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	order := PurchaseOrder{
		SupplierName:    input.SupplierName,
		ItemName:        input.ItemName,
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
		TotalAmount:     input.UnitPrice.Mul(decimal.NewFromInt(int64(input.Quantity))),
		Status:          PurchaseOrderStatusOrdered,
		OrderedAt:       time.Now(),
		InventoryItemId: input.InventoryItemId,
		JobId:           input.JobId,
		UserId:          userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ReceivePurchaseOrder marks the order received and, when it targets a
// stocked item, tops up that item's quantity in the same transaction.
func ReceivePurchaseOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	order, err := utils.FetchModel[PurchaseOrder](ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status != PurchaseOrderStatusOrdered {
		return nil, utils.ErrorRecordNotFound
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(order).Updates(map[string]interface{}{
			"status":      PurchaseOrderStatusReceived,
			"received_at": now,
		}).Error; err != nil {
			return err
		}
		if order.InventoryItemId != nil {
			return tx.Model(&InventoryItem{}).
				Where("id = ?", *order.InventoryItemId).
				Update("quantity", gorm.Expr("quantity + ?", order.Quantity)).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[PurchaseOrder](ctx, id)
}

func CancelPurchaseOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	order, err := utils.FetchModel[PurchaseOrder](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(order).Update("status", PurchaseOrderStatusCancelled).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func GetPurchaseOrders(ctx context.Context) ([]*PurchaseOrder, error) {
	return utils.FetchAllModels[PurchaseOrder](ctx)
}

func GetPurchaseOrder(ctx context.Context, id string) (*PurchaseOrder, error) {
	return utils.FetchModel[PurchaseOrder](ctx, id)
}
