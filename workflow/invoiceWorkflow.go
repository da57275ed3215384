package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNoJobsSelected   = errors.New("no jobs selected for invoicing")
	ErrJobNotInvoicable = errors.New("job is not in an invoicable state")
)

var invoiceTaxRate = decimal.NewFromFloat(0.1)

// CreateInvoiceFromJobs rolls the selected jobs into a single invoice.
// Each job becomes one line at quantity 1 with the job price as the unit
// price plus 10% tax. Jobs flip to invoiced in the same transaction, so
// a mid-way failure leaves nothing half-billed.
func CreateInvoiceFromJobs(ctx context.Context, customerName string, customerId *string, jobIds []string) (*models.Invoice, error) {
	if len(jobIds) == 0 {
		return nil, ErrNoJobsSelected
	}

	db := config.GetDB()
	var invoice models.Invoice
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var jobs []*models.Job
		if err := tx.Where("id IN ?", utils.UniqueSlice(jobIds)).Find(&jobs).Error; err != nil {
			return err
		}
		if len(jobs) != len(utils.UniqueSlice(jobIds)) {
			return utils.ErrorRecordNotFound
		}

		subtotal := decimal.Zero
		for _, job := range jobs {
			if job.InvoiceStatus != models.InvoiceStatusUninvoiced {
				return fmt.Errorf("%w: job %d is %s", ErrJobNotInvoicable, job.JobNumber, job.InvoiceStatus)
			}
			subtotal = subtotal.Add(job.Price)
		}
		taxTotal := subtotal.Mul(invoiceTaxRate).Round(0)

		userId, _ := utils.GetUserIdFromContext(ctx)
		now := time.Now()
		invoice = models.Invoice{
			InvoiceNo:    fmt.Sprintf("INV-%d", now.UnixMilli()),
			CustomerId:   customerId,
			CustomerName: customerName,
			IssueDate:    now,
			Subtotal:     subtotal,
			TaxTotal:     taxTotal,
			GrandTotal:   subtotal.Add(taxTotal),
			Status:       models.InvoiceStatusInvoiced,
			UserId:       userId,
		}
		if err := tx.Create(&invoice).Error; err != nil {
			return err
		}

		for _, job := range jobs {
			item := models.InvoiceItem{
				InvoiceId:   invoice.ID,
				JobId:       &job.ID,
				Description: fmt.Sprintf("#%d %s", job.JobNumber, job.Title),
				Quantity:    1,
				UnitPrice:   job.Price,
				TaxAmount:   job.Price.Mul(invoiceTaxRate).Round(0),
				Amount:      job.Price,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			invoice.Items = append(invoice.Items, item)

			if err := models.SetJobInvoiceStatus(ctx, tx, job, models.InvoiceStatusInvoiced, &invoice.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// MarkInvoicePaid finishes an invoice and every job on it.
func MarkInvoicePaid(ctx context.Context, invoiceId string) (*models.Invoice, error) {
	invoice, err := models.GetInvoice(ctx, invoiceId)
	if err != nil {
		return nil, err
	}
	if !invoice.Status.CanTransitionTo(models.InvoiceStatusPaid) {
		return nil, fmt.Errorf("invoice is %s, cannot mark paid", invoice.Status)
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Model(invoice).Updates(map[string]interface{}{
			"status":  models.InvoiceStatusPaid,
			"paid_at": now,
		}).Error; err != nil {
			return err
		}
		for _, item := range invoice.Items {
			if item.JobId == nil {
				continue
			}
			var job models.Job
			if err := tx.Where("id = ?", *item.JobId).First(&job).Error; err != nil {
				return err
			}
			if err := models.SetJobInvoiceStatus(ctx, tx, &job, models.InvoiceStatusPaid, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return models.GetInvoice(ctx, invoiceId)
}
