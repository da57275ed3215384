package models

import (
	"context"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
)

type BugReport struct {
	UUIDBase
	Title       string          `gorm:"size:255;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	PageUrl     string          `gorm:"size:500" json:"page_url"`
	Severity    string          `gorm:"size:20" json:"severity"`
	Status      BugReportStatus `gorm:"size:20;not null" json:"status"`
	ReporterId  string          `gorm:"type:char(36);index" json:"reporter_id"`
}

type NewBugReport struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	PageUrl     string `json:"page_url"`
	Severity    string `json:"severity"`
}

func CreateBugReport(ctx context.Context, input *NewBugReport) (*BugReport, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	report := BugReport{
		Title:       input.Title,
		Description: input.Description,
		PageUrl:     input.PageUrl,
		Severity:    input.Severity,
		Status:      BugReportStatusOpen,
		ReporterId:  userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func SetBugReportStatus(ctx context.Context, id string, status BugReportStatus) (*BugReport, error) {
	report, err := utils.FetchModel[BugReport](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Model(report).Update("status", status).Error; err != nil {
		return nil, err
	}
	return report, nil
}

func GetBugReports(ctx context.Context) ([]*BugReport, error) {
	return utils.FetchAllModels[BugReport](ctx)
}
