package models

import (
	"context"
	"encoding/json"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"gorm.io/gorm"
)

// InboxItem is an uploaded document (receipt, vendor invoice) waiting for
// AI extraction and human review. ExtractedData is whatever the extractor
// produced, kept raw so review edits round-trip unchanged.
type InboxItem struct {
	UUIDBase
	FileName      string          `gorm:"size:255;not null" json:"file_name"`
	ObjectKey     string          `gorm:"size:500;not null" json:"object_key"`
	MimeType      string          `gorm:"size:100" json:"mime_type"`
	FileUrl       string          `gorm:"-" json:"file_url"`
	Status        InboxItemStatus `gorm:"size:20;not null" json:"status"`
	ExtractedData json.RawMessage `gorm:"type:json" json:"extracted_data"`
	ErrorMessage  string          `gorm:"type:text" json:"error_message"`
	ReviewedAt    *time.Time      `gorm:"default:null" json:"reviewed_at"`
	JournalId     *string         `gorm:"type:char(36);index;default:null" json:"journal_id"`
	UserId        string          `gorm:"type:char(36);index" json:"user_id"`
}

func (item *InboxItem) AfterFind(tx *gorm.DB) error {
	item.FileUrl = utils.BuildObjectAccessURL(utils.BucketInbox, item.ObjectKey)
	return nil
}

func CreateInboxItem(ctx context.Context, fileName, objectKey, mimeType string) (*InboxItem, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	item := InboxItem{
		FileName:  fileName,
		ObjectKey: objectKey,
		MimeType:  mimeType,
		Status:    InboxItemStatusProcessing,
		UserId:    userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	item.FileUrl = utils.BuildObjectAccessURL(utils.BucketInbox, item.ObjectKey)
	return &item, nil
}

func SetInboxItemExtracted(ctx context.Context, id string, data json.RawMessage) error {
	db := config.GetDB()
	return db.WithContext(ctx).Model(&InboxItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":         InboxItemStatusPendingReview,
		"extracted_data": []byte(data),
		"error_message":  "",
	}).Error
}

func SetInboxItemError(ctx context.Context, id string, message string) error {
	db := config.GetDB()
	return db.WithContext(ctx).Model(&InboxItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        InboxItemStatusError,
		"error_message": message,
	}).Error
}

func GetInboxItems(ctx context.Context) ([]*InboxItem, error) {
	return utils.FetchAllModels[InboxItem](ctx)
}

func GetInboxItem(ctx context.Context, id string) (*InboxItem, error) {
	return utils.FetchModel[InboxItem](ctx, id)
}

func DeleteInboxItem(ctx context.Context, id string) (*InboxItem, error) {
	item, err := utils.FetchModel[InboxItem](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}
