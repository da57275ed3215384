package models

import (
	"context"
	"errors"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type JournalEntry struct {
	UUIDBase
	EntryDate   time.Time     `json:"entry_date"`
	Description string        `gorm:"size:500" json:"description"`
	Lines       []JournalLine `gorm:"foreignKey:JournalId" json:"lines"`
	SourceType  string        `gorm:"size:30" json:"source_type"`
	SourceId    *string       `gorm:"type:char(36);index;default:null" json:"source_id"`
	UserId      string        `gorm:"type:char(36);index" json:"user_id"`
}

type JournalLine struct {
	UUIDBase
	JournalId     string          `gorm:"type:char(36);index;not null" json:"journal_id"`
	AccountItemId string          `gorm:"type:char(36);index;not null" json:"account_item_id"`
	Debit         decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"debit"`
	Credit        decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"credit"`
	Memo          string          `gorm:"size:255" json:"memo"`
}

type NewJournalLine struct {
	AccountItemId string          `json:"account_item_id" binding:"required"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Memo          string          `json:"memo"`
}

type NewJournalEntry struct {
	EntryDate   time.Time        `json:"entry_date" binding:"required"`
	Description string           `json:"description"`
	Lines       []NewJournalLine `json:"lines" binding:"required"`
	SourceType  string           `json:"source_type"`
	SourceId    *string          `json:"source_id"`
}

// PostJournalEntry writes a balanced journal. Debits and credits must
// match to the unit.
func PostJournalEntry(ctx context.Context, tx *gorm.DB, input *NewJournalEntry) (*JournalEntry, error) {
	if len(input.Lines) == 0 {
		return nil, errors.New("journal entry needs at least one line")
	}

	debitTotal := decimal.Zero
	creditTotal := decimal.Zero
	accountIds := make([]string, 0, len(input.Lines))
	for _, line := range input.Lines {
		debitTotal = debitTotal.Add(line.Debit)
		creditTotal = creditTotal.Add(line.Credit)
		accountIds = append(accountIds, line.AccountItemId)
	}
	if !debitTotal.Equal(creditTotal) {
		return nil, errors.New("journal entry is not balanced")
	}
	if err := utils.ValidateResourcesId[AccountItem](ctx, accountIds); err != nil {
		return nil, err
	}

	userId, _ := utils.GetUserIdFromContext(ctx)
	entry := JournalEntry{
		EntryDate:   input.EntryDate,
		Description: input.Description,
		SourceType:  input.SourceType,
		SourceId:    input.SourceId,
		UserId:      userId,
	}
	if err := tx.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, err
	}
	for _, line := range input.Lines {
		journalLine := JournalLine{
			JournalId:     entry.ID,
			AccountItemId: line.AccountItemId,
			Debit:         line.Debit,
			Credit:        line.Credit,
			Memo:          line.Memo,
		}
		if err := tx.WithContext(ctx).Create(&journalLine).Error; err != nil {
			return nil, err
		}
		entry.Lines = append(entry.Lines, journalLine)
	}
	return &entry, nil
}

func GetJournalEntries(ctx context.Context) ([]*JournalEntry, error) {
	db := config.GetDB()
	var entries []*JournalEntry
	err := db.WithContext(ctx).Preload("Lines").Order("entry_date DESC").Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func GetJournalEntry(ctx context.Context, id string) (*JournalEntry, error) {
	return utils.FetchModel[JournalEntry](ctx, id, "Lines")
}
