package models

import (
	"context"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
)

// AnalysisHistory keeps a record of each ad-hoc AI analysis a user ran,
// so results survive page reloads and can be audited.
type AnalysisHistory struct {
	UUIDBase
	Kind    string `gorm:"size:50;not null" json:"kind"`
	Query   string `gorm:"type:text" json:"query"`
	Result  string `gorm:"type:mediumtext" json:"result"`
	Sources string `gorm:"type:text" json:"sources"`
	UserId  string `gorm:"type:char(36);index" json:"user_id"`
}

func RecordAnalysis(ctx context.Context, kind, query, result, sources string) (*AnalysisHistory, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	record := AnalysisHistory{
		Kind:    kind,
		Query:   query,
		Result:  result,
		Sources: sources,
		UserId:  userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func GetAnalysisHistory(ctx context.Context, kind string) ([]*AnalysisHistory, error) {
	db := config.GetDB()
	var records []*AnalysisHistory
	query := db.WithContext(ctx).Order("created_at DESC")
	userId, _ := utils.GetUserIdFromContext(ctx)
	query = query.Where("user_id = ?", userId)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if err := query.Limit(50).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
