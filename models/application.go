package models

import (
	"context"
	"fmt"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Application is a request for approval (expense, leave, purchase) that
// walks the steps of its route one level at a time. CurrentLevel is
// 1-based; CurrentApproverId is nil once the application is terminal.
type Application struct {
	UUIDBase
	ApplicationCode   string            `gorm:"size:50;uniqueIndex;not null" json:"application_code"`
	Title             string            `gorm:"size:255;not null" json:"title"`
	Category          string            `gorm:"size:100" json:"category"`
	Amount            decimal.Decimal   `gorm:"type:decimal(20,4);default:0" json:"amount"`
	Body              string            `gorm:"type:text" json:"body"`
	Status            ApplicationStatus `gorm:"size:30;not null" json:"status"`
	RouteId           string            `gorm:"type:char(36);index;not null" json:"route_id"`
	Route             *ApprovalRoute    `gorm:"foreignKey:RouteId" json:"route,omitempty"`
	ApplicantId       string            `gorm:"type:char(36);index;not null" json:"applicant_id"`
	CurrentLevel      int               `gorm:"default:0" json:"current_level"`
	CurrentApproverId *string           `gorm:"type:char(36);index;default:null" json:"current_approver_id"`
	RejectionReason   string            `gorm:"type:text" json:"rejection_reason"`
	ApprovedAt        *time.Time        `gorm:"default:null" json:"approved_at"`
	RejectedAt        *time.Time        `gorm:"default:null" json:"rejected_at"`
	AttachmentKey     string            `gorm:"size:500" json:"attachment_key"`
}

type NewApplication struct {
	Title         string          `json:"title" binding:"required"`
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	Body          string          `json:"body"`
	RouteId       string          `json:"route_id" binding:"required"`
	AttachmentKey string          `json:"attachment_key"`
}

func nextApplicationCode(ctx context.Context, tx *gorm.DB) (string, error) {
	var count int64
	if err := tx.WithContext(ctx).Model(&Application{}).Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("APP-%d-%05d", time.Now().Year(), count+1), nil
}

func CreateApplication(ctx context.Context, tx *gorm.DB, app *Application) error {
	code, err := nextApplicationCode(ctx, tx)
	if err != nil {
		return err
	}
	app.ApplicationCode = code
	return tx.WithContext(ctx).Create(app).Error
}

// GetApplicationsForUser lists applications the user is the applicant of
// or is currently asked to approve. Admins see everything.
func GetApplicationsForUser(ctx context.Context) ([]*Application, error) {
	db := config.GetDB()
	var applications []*Application
	query := db.WithContext(ctx).Preload("Route").Order("created_at DESC")
	if isAdmin, _ := utils.GetIsAdminFromContext(ctx); !isAdmin {
		userId, _ := utils.GetUserIdFromContext(ctx)
		query = query.Where("applicant_id = ? OR current_approver_id = ?", userId, userId)
	}
	if err := query.Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func GetApplication(ctx context.Context, id string) (*Application, error) {
	return utils.FetchModel[Application](ctx, id, "Route")
}
