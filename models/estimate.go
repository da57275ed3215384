package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EstimateLineItem struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Total     decimal.Decimal `json:"total"`
}

type EstimateLineItems []EstimateLineItem

func (items EstimateLineItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

func (items *EstimateLineItems) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan estimate line items: %v", value)
	}
	return json.Unmarshal(bytes, items)
}

type Estimate struct {
	UUIDBase
	EstimateNumber string            `gorm:"size:50;uniqueIndex;not null" json:"estimate_number"`
	CustomerId     *string           `gorm:"type:char(36);index;default:null" json:"customer_id"`
	CustomerName   string            `gorm:"size:255;not null" json:"customer_name"`
	Title          string            `gorm:"size:255" json:"title"`
	Status         EstimateStatus    `gorm:"size:20;not null" json:"status"`
	IssueDate      *time.Time        `gorm:"default:null" json:"issue_date"`
	ExpiryDate     *time.Time        `gorm:"default:null" json:"expiry_date"`
	Items          EstimateLineItems `gorm:"type:json" json:"items"`
	TaxInclusive   *bool             `gorm:"not null;default:false" json:"tax_inclusive"`
	Subtotal       decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxTotal       decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"tax_total"`
	GrandTotal     decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	Notes          string            `gorm:"type:text" json:"notes"`
	Version        int               `gorm:"not null;default:1" json:"version"`
	UserId         string            `gorm:"type:char(36);index" json:"user_id"`
}

type NewEstimate struct {
	CustomerId   *string           `json:"customer_id"`
	CustomerName string            `json:"customer_name" binding:"required"`
	Title        string            `json:"title"`
	Status       EstimateStatus    `json:"status"`
	IssueDate    *time.Time        `json:"issue_date"`
	ExpiryDate   *time.Time        `json:"expiry_date"`
	Items        EstimateLineItems `json:"items"`
	TaxInclusive bool              `json:"tax_inclusive"`
	Notes        string            `json:"notes"`
}

type UpdateEstimateInput struct {
	CustomerId   *string            `json:"customer_id"`
	CustomerName *string            `json:"customer_name"`
	Title        *string            `json:"title"`
	Status       *EstimateStatus    `json:"status"`
	IssueDate    *time.Time         `json:"issue_date"`
	ExpiryDate   *time.Time         `json:"expiry_date"`
	Items        *EstimateLineItems `json:"items"`
	TaxInclusive *bool              `json:"tax_inclusive"`
	Notes        *string            `json:"notes"`
}

var defaultTaxRate = decimal.NewFromFloat(0.1)

// ErrInvalidTaxRate rejects negative line tax rates. A rate of -1 would
// otherwise make the tax-inclusive divisor zero.
var ErrInvalidTaxRate = errors.New("line item tax_rate must not be negative")

// CalcEstimateTotals recomputes each line total plus the estimate-level
// subtotal, tax and grand total. Line tax defaults to 10% when unset.
// Tax-inclusive estimates carve the tax out of the entered amounts
// instead of adding it on top.
func CalcEstimateTotals(items EstimateLineItems, taxInclusive bool) (EstimateLineItems, decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	out := make(EstimateLineItems, len(items))
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	one := decimal.NewFromInt(1)

	for i, item := range items {
		rate := item.TaxRate
		if rate.IsNegative() {
			return nil, decimal.Zero, decimal.Zero, decimal.Zero, ErrInvalidTaxRate
		}
		if rate.IsZero() {
			rate = defaultTaxRate
		}
		sub := item.Quantity.Mul(item.UnitPrice)

		var tax decimal.Decimal
		if taxInclusive {
			tax = sub.Sub(sub.Div(one.Add(rate))).Round(0)
		} else {
			tax = sub.Mul(rate).Round(0)
		}

		out[i] = item
		out[i].TaxRate = rate
		if taxInclusive {
			out[i].Total = sub
		} else {
			out[i].Total = sub.Add(tax)
		}
		subtotal = subtotal.Add(sub)
		taxTotal = taxTotal.Add(tax)
	}

	var grandTotal decimal.Decimal
	if taxInclusive {
		grandTotal = subtotal.Round(0)
	} else {
		grandTotal = subtotal.Add(taxTotal).Round(0)
	}
	return out, subtotal, taxTotal, grandTotal, nil
}

// NextEstimateNumber follows the job-number scheme with an EST- prefix.
func NextEstimateNumber(ctx context.Context, tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&Estimate{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("EST-%d-%04d", time.Now().Year(), count+1), nil
}

func CreateEstimate(ctx context.Context, input *NewEstimate) (*Estimate, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	status := input.Status
	if status == "" {
		status = EstimateStatusDraft
	}

	items, subtotal, taxTotal, grandTotal, err := CalcEstimateTotals(input.Items, input.TaxInclusive)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var estimate Estimate
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		number, err := NextEstimateNumber(ctx, tx)
		if err != nil {
			return err
		}
		taxInclusive := input.TaxInclusive
		estimate = Estimate{
			EstimateNumber: number,
			CustomerId:     input.CustomerId,
			CustomerName:   input.CustomerName,
			Title:          input.Title,
			Status:         status,
			IssueDate:      input.IssueDate,
			ExpiryDate:     input.ExpiryDate,
			Items:          items,
			TaxInclusive:   &taxInclusive,
			Subtotal:       subtotal,
			TaxTotal:       taxTotal,
			GrandTotal:     grandTotal,
			Notes:          input.Notes,
			Version:        1,
			UserId:         userId,
		}
		return tx.Create(&estimate).Error
	})
	if err != nil {
		return nil, err
	}
	return &estimate, nil
}

// UpdateEstimate applies a partial update. Totals are recomputed only when
// the request carries items, so metadata-only edits never zero them out.
func UpdateEstimate(ctx context.Context, id string, input *UpdateEstimateInput) (*Estimate, error) {
	estimate, err := utils.FetchModel[Estimate](ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.CustomerId != nil {
		updates["customer_id"] = *input.CustomerId
	}
	if input.CustomerName != nil {
		updates["customer_name"] = *input.CustomerName
	}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.IssueDate != nil {
		updates["issue_date"] = *input.IssueDate
	}
	if input.ExpiryDate != nil {
		updates["expiry_date"] = *input.ExpiryDate
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}

	taxInclusive := utils.DereferencePtr(estimate.TaxInclusive)
	if input.TaxInclusive != nil {
		taxInclusive = *input.TaxInclusive
		updates["tax_inclusive"] = taxInclusive
	}
	if input.Items != nil {
		items, subtotal, taxTotal, grandTotal, err := CalcEstimateTotals(*input.Items, taxInclusive)
		if err != nil {
			return nil, err
		}
		updates["items"] = items
		updates["subtotal"] = subtotal
		updates["tax_total"] = taxTotal
		updates["grand_total"] = grandTotal
		updates["version"] = estimate.Version + 1
	} else if input.TaxInclusive != nil {
		items, subtotal, taxTotal, grandTotal, err := CalcEstimateTotals(estimate.Items, taxInclusive)
		if err != nil {
			return nil, err
		}
		updates["items"] = items
		updates["subtotal"] = subtotal
		updates["tax_total"] = taxTotal
		updates["grand_total"] = grandTotal
	}
	if len(updates) == 0 {
		return estimate, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(estimate).Updates(updates).Error; err != nil {
		return nil, err
	}
	return utils.FetchModel[Estimate](ctx, id)
}

// AcceptEstimate marks an estimate accepted and spawns a job from it.
func AcceptEstimate(ctx context.Context, id string) (*Job, error) {
	estimate, err := utils.FetchModel[Estimate](ctx, id)
	if err != nil {
		return nil, err
	}
	if estimate.Status == EstimateStatusAccepted {
		return nil, errors.New("estimate is already accepted")
	}

	db := config.GetDB()
	var job *Job
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(estimate).Update("status", EstimateStatusAccepted).Error; err != nil {
			return err
		}
		created, err := CreateJobTx(ctx, tx, &NewJob{
			ClientName: estimate.CustomerName,
			Title:      estimate.Title,
			Status:     JobStatusPending,
			Price:      estimate.GrandTotal,
		})
		if err != nil {
			return err
		}
		job = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return job, nil
}

func GetEstimates(ctx context.Context) ([]*Estimate, error) {
	return utils.FetchAllModels[Estimate](ctx)
}

func GetEstimate(ctx context.Context, id string) (*Estimate, error) {
	return utils.FetchModel[Estimate](ctx, id)
}

func DeleteEstimate(ctx context.Context, id string) (*Estimate, error) {
	return utils.DeleteModel[Estimate](ctx, id)
}
