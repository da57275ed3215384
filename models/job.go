package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Job struct {
	UUIDBase
	JobNumber           int                 `gorm:"uniqueIndex;not null" json:"job_number"`
	ClientName          string              `gorm:"size:255;not null" json:"client_name"`
	Title               string              `gorm:"size:255;not null" json:"title"`
	Status              JobStatus           `gorm:"size:30;not null" json:"status"`
	DueDate             *time.Time          `gorm:"default:null" json:"due_date"`
	Quantity            int                 `gorm:"default:0" json:"quantity"`
	PaperType           string              `gorm:"size:100" json:"paper_type"`
	Finishing           string              `gorm:"size:100" json:"finishing"`
	Details             string              `gorm:"type:text" json:"details"`
	Price               decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"price"`
	VariableCost        decimal.Decimal     `gorm:"type:decimal(20,4);default:0" json:"variable_cost"`
	InvoiceStatus       InvoiceStatus       `gorm:"size:20;not null;default:uninvoiced" json:"invoice_status"`
	InvoicedAt          *time.Time          `gorm:"default:null" json:"invoiced_at"`
	PaidAt              *time.Time          `gorm:"default:null" json:"paid_at"`
	ReadyToInvoice      *bool               `gorm:"not null;default:false" json:"ready_to_invoice"`
	InvoiceId           *string             `gorm:"type:char(36);index;default:null" json:"invoice_id"`
	ManufacturingStatus ManufacturingStatus `gorm:"size:30;not null" json:"manufacturing_status"`
	ProjectId           *string             `gorm:"type:char(36);index;default:null" json:"project_id"`
	ProjectName         string              `gorm:"size:255" json:"project_name"`
	UserId              string              `gorm:"type:char(36);index" json:"user_id"`
}

type NewJob struct {
	ClientName          string              `json:"client_name" binding:"required"`
	Title               string              `json:"title" binding:"required"`
	Status              JobStatus           `json:"status" binding:"required"`
	DueDate             *time.Time          `json:"due_date"`
	Quantity            int                 `json:"quantity"`
	PaperType           string              `json:"paper_type"`
	Finishing           string              `json:"finishing"`
	Details             string              `json:"details"`
	Price               decimal.Decimal     `json:"price"`
	VariableCost        decimal.Decimal     `json:"variable_cost"`
	ManufacturingStatus ManufacturingStatus `json:"manufacturing_status"`
	ProjectId           *string             `json:"project_id"`
	ProjectName         string              `json:"project_name"`
}

type UpdateJobInput struct {
	ClientName          *string              `json:"client_name"`
	Title               *string              `json:"title"`
	Status              *JobStatus           `json:"status"`
	DueDate             *time.Time           `json:"due_date"`
	Quantity            *int                 `json:"quantity"`
	PaperType           *string              `json:"paper_type"`
	Finishing           *string              `json:"finishing"`
	Details             *string              `json:"details"`
	Price               *decimal.Decimal     `json:"price"`
	VariableCost        *decimal.Decimal     `json:"variable_cost"`
	ManufacturingStatus *ManufacturingStatus `json:"manufacturing_status"`
	ProjectId           *string              `json:"project_id"`
	ProjectName         *string              `json:"project_name"`
}

// NextJobNumber assigns year-prefixed sequential numbers (YYYY0001...).
//
// Known gap: this is read-max-then-insert with no atomic counter, so two
// concurrent creators can race to the same number. The unique index turns
// that race into an insert error instead of a silent duplicate.
func NextJobNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	var max *int
	if err := tx.WithContext(ctx).Model(&Job{}).Select("MAX(job_number)").Scan(&max).Error; err != nil {
		return 0, err
	}
	if max == nil || *max == 0 {
		return time.Now().Year()*10000 + 1, nil
	}
	return *max + 1, nil
}

func CreateJob(ctx context.Context, input *NewJob) (*Job, error) {
	db := config.GetDB()
	var job *Job
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := CreateJobTx(ctx, tx, input)
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

// CreateJobTx creates a job inside a caller-owned transaction, so flows
// like estimate acceptance commit the job and their own writes together.
func CreateJobTx(ctx context.Context, tx *gorm.DB, input *NewJob) (*Job, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)

	number, err := NextJobNumber(ctx, tx)
	if err != nil {
		return nil, err
	}
	job := Job{
		JobNumber:           number,
		ClientName:          input.ClientName,
		Title:               input.Title,
		Status:              input.Status,
		DueDate:             input.DueDate,
		Quantity:            input.Quantity,
		PaperType:           input.PaperType,
		Finishing:           input.Finishing,
		Details:             input.Details,
		Price:               input.Price,
		VariableCost:        input.VariableCost,
		InvoiceStatus:       InvoiceStatusUninvoiced,
		ReadyToInvoice:      utils.NewFalse(),
		ManufacturingStatus: input.ManufacturingStatus,
		ProjectId:           input.ProjectId,
		ProjectName:         input.ProjectName,
		UserId:              userId,
	}
	if job.ManufacturingStatus == "" {
		job.ManufacturingStatus = ManufacturingStatusNotStarted
	}
	if err := tx.Create(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

func UpdateJob(ctx context.Context, id string, input *UpdateJobInput) (*Job, error) {
	db := config.GetDB()
	job, err := utils.FetchModel[Job](ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.ClientName != nil {
		updates["client_name"] = *input.ClientName
	}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("invalid job status %q", *input.Status)
		}
		updates["status"] = *input.Status
	}
	if input.DueDate != nil {
		updates["due_date"] = *input.DueDate
	}
	if input.Quantity != nil {
		updates["quantity"] = *input.Quantity
	}
	if input.PaperType != nil {
		updates["paper_type"] = *input.PaperType
	}
	if input.Finishing != nil {
		updates["finishing"] = *input.Finishing
	}
	if input.Details != nil {
		updates["details"] = *input.Details
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.VariableCost != nil {
		updates["variable_cost"] = *input.VariableCost
	}
	if input.ManufacturingStatus != nil {
		updates["manufacturing_status"] = *input.ManufacturingStatus
	}
	if input.ProjectId != nil {
		updates["project_id"] = *input.ProjectId
	}
	if input.ProjectName != nil {
		updates["project_name"] = *input.ProjectName
	}
	if len(updates) == 0 {
		return job, nil
	}

	if err := db.WithContext(ctx).Model(job).Updates(updates).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// SetJobInvoiceStatus moves a job along the monotonic invoice lifecycle and
// stamps the matching timestamp.
func SetJobInvoiceStatus(ctx context.Context, tx *gorm.DB, job *Job, next InvoiceStatus, invoiceId *string) error {
	if !job.InvoiceStatus.CanTransitionTo(next) {
		return fmt.Errorf("invoice status cannot move from %s to %s", job.InvoiceStatus, next)
	}

	now := time.Now()
	updates := map[string]interface{}{"invoice_status": next}
	switch next {
	case InvoiceStatusInvoiced:
		updates["invoiced_at"] = now
		if invoiceId != nil {
			updates["invoice_id"] = *invoiceId
		}
	case InvoiceStatusPaid:
		updates["paid_at"] = now
	}
	return tx.WithContext(ctx).Model(job).Updates(updates).Error
}

func SetJobReadyToInvoice(ctx context.Context, id string, value bool) error {
	job, err := utils.FetchModel[Job](ctx, id)
	if err != nil {
		return err
	}
	if job.InvoiceStatus != InvoiceStatusUninvoiced {
		return errors.New("job is already invoiced")
	}
	db := config.GetDB()
	return db.WithContext(ctx).Model(job).Update("ready_to_invoice", value).Error
}

func GetJobs(ctx context.Context) ([]*Job, error) {
	return utils.FetchAllModels[Job](ctx)
}

func GetJob(ctx context.Context, id string) (*Job, error) {
	return utils.FetchModel[Job](ctx, id)
}

func DeleteJob(ctx context.Context, id string) (*Job, error) {
	job, err := utils.FetchModel[Job](ctx, id)
	if err != nil {
		return nil, err
	}
	if job.InvoiceStatus != InvoiceStatusUninvoiced {
		return nil, errors.New("invoiced jobs cannot be deleted")
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}
