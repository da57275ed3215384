package models

import (
	"context"
	"time"

	"github.com/daiwaprint/erp_backend/utils"
	"github.com/shopspring/decimal"
)

type Invoice struct {
	UUIDBase
	InvoiceNo    string          `gorm:"size:50;uniqueIndex;not null" json:"invoice_no"`
	CustomerId   *string         `gorm:"type:char(36);index;default:null" json:"customer_id"`
	CustomerName string          `gorm:"size:255;not null" json:"customer_name"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      *time.Time      `gorm:"default:null" json:"due_date"`
	Subtotal     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"subtotal"`
	TaxTotal     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_total"`
	GrandTotal   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"grand_total"`
	Status       InvoiceStatus   `gorm:"size:20;not null;default:invoiced" json:"status"`
	PaidAt       *time.Time      `gorm:"default:null" json:"paid_at"`
	Items        []InvoiceItem   `gorm:"foreignKey:InvoiceId" json:"items"`
	UserId       string          `gorm:"type:char(36);index" json:"user_id"`
}

type InvoiceItem struct {
	UUIDBase
	InvoiceId   string          `gorm:"type:char(36);index;not null" json:"invoice_id"`
	JobId       *string         `gorm:"type:char(36);index;default:null" json:"job_id"`
	Description string          `gorm:"size:255;not null" json:"description"`
	Quantity    int             `gorm:"default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"unit_price"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"tax_amount"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"amount"`
}

func GetInvoices(ctx context.Context) ([]*Invoice, error) {
	return utils.FetchAllModels[Invoice](ctx, "Items")
}

func GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	return utils.FetchModel[Invoice](ctx, id, "Items")
}
