package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/bsm/redislock"
	"github.com/daiwaprint/erp_backend/ai"
	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/utils"
	"gorm.io/gorm"
)

var ErrItemNotReviewable = errors.New("inbox item is not awaiting review")

// UploadInboxFile stores the document in the inbox bucket, records the
// item and kicks off extraction in the background.
func UploadInboxFile(ctx context.Context, fileName string, file io.Reader) (*models.InboxItem, error) {
	objectKey := utils.GenerateUniqueFilename(fileName)
	mimeType, err := utils.UploadFileToGCS(ctx, utils.BucketInbox, objectKey, file)
	if err != nil {
		return nil, err
	}

	item, err := models.CreateInboxItem(ctx, fileName, objectKey, mimeType)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		bgCtx = copyIdentity(ctx, bgCtx)
		if err := ProcessInboxItem(bgCtx, item.ID); err != nil {
			logger := config.GetLogger()
			config.LogError(logger, "workflow", "ProcessInboxItem", item.ID, nil, err)
		}
	}()

	return item, nil
}

func copyIdentity(src, dst context.Context) context.Context {
	if userId, ok := utils.GetUserIdFromContext(src); ok {
		dst = utils.SetUserIdInContext(dst, userId)
	}
	if correlationId, ok := utils.GetCorrelationIdFromContext(src); ok {
		dst = utils.SetCorrelationIdInContext(dst, correlationId)
	}
	return dst
}

// ProcessInboxItem downloads the stored document and runs AI extraction,
// moving the item to pending_review on success and error on failure. A
// redis lock keeps two workers off the same item.
func ProcessInboxItem(ctx context.Context, itemId string) error {
	if locker := config.GetRedisLock(); locker != nil {
		lock, err := locker.Obtain(ctx, "inbox:process:"+itemId, 5*time.Minute, nil)
		if err != nil {
			if errors.Is(err, redislock.ErrNotObtained) {
				return nil
			}
			return err
		}
		defer lock.Release(ctx)
	}

	item, err := models.GetInboxItem(ctx, itemId)
	if err != nil {
		return err
	}
	if item.Status != models.InboxItemStatusProcessing {
		return nil
	}

	client, err := ai.NewClient()
	if err != nil {
		models.SetInboxItemError(ctx, itemId, err.Error())
		return err
	}

	fileData, err := utils.DownloadFileFromGCS(ctx, utils.BucketInbox, item.ObjectKey)
	if err != nil {
		models.SetInboxItemError(ctx, itemId, err.Error())
		return err
	}

	_, raw, err := client.ExtractInvoiceDetails(ctx, fileData, item.MimeType)
	if err != nil {
		models.SetInboxItemError(ctx, itemId, err.Error())
		return err
	}

	return models.SetInboxItemExtracted(ctx, itemId, raw)
}

// ApproveInboxItem confirms a reviewed extraction: a journal entry is
// posted from the reviewer-approved lines and the item moves to
// approved. The journal and the status change commit together.
func ApproveInboxItem(ctx context.Context, itemId string, journal *models.NewJournalEntry) (*models.InboxItem, error) {
	item, err := models.GetInboxItem(ctx, itemId)
	if err != nil {
		return nil, err
	}
	if item.Status != models.InboxItemStatusPendingReview {
		return nil, ErrItemNotReviewable
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := models.PostJournalEntry(ctx, tx, journal)
		if err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(item).Updates(map[string]interface{}{
			"status":      models.InboxItemStatusApproved,
			"reviewed_at": now,
			"journal_id":  entry.ID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return models.GetInboxItem(ctx, itemId)
}

// RetryInboxItem puts a failed item back into processing and runs
// extraction again.
func RetryInboxItem(ctx context.Context, itemId string) error {
	item, err := models.GetInboxItem(ctx, itemId)
	if err != nil {
		return err
	}
	if item.Status != models.InboxItemStatusError {
		return fmt.Errorf("inbox item is %s, only errored items can be retried", item.Status)
	}
	db := config.GetDB()
	err = db.WithContext(ctx).Model(item).Updates(map[string]interface{}{
		"status":        models.InboxItemStatusProcessing,
		"error_message": "",
	}).Error
	if err != nil {
		return err
	}
	return ProcessInboxItem(ctx, itemId)
}

// DeleteInboxItem removes the record and its stored file.
func DeleteInboxItem(ctx context.Context, itemId string) error {
	item, err := models.DeleteInboxItem(ctx, itemId)
	if err != nil {
		return err
	}
	if err := utils.DeleteFileFromGCS(ctx, utils.BucketInbox, item.ObjectKey); err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "workflow", "DeleteInboxItem", item.ObjectKey, nil, err)
	}
	return nil
}
