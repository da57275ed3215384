package models

import (
	"context"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
)

// Organisational master tables. All of them share the same create/list/
// delete shape through the generic helpers.

type AllocationDivision struct {
	UUIDBase
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

type Department struct {
	UUIDBase
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

type Title struct {
	UUIDBase
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

type PaymentRecipient struct {
	UUIDBase
	Name        string `gorm:"size:255;not null" json:"name"`
	BankName    string `gorm:"size:255" json:"bank_name"`
	BranchName  string `gorm:"size:255" json:"branch_name"`
	AccountType string `gorm:"size:20" json:"account_type"`
	AccountNo   string `gorm:"size:30" json:"account_no"`
}

type NewNamedMaster struct {
	Name string `json:"name" binding:"required"`
}

func CreateNamedMaster[T any](ctx context.Context, record *T) (*T, error) {
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func GetAllocationDivisions(ctx context.Context) ([]*AllocationDivision, error) {
	return utils.FetchAllModels[AllocationDivision](ctx)
}

func GetDepartments(ctx context.Context) ([]*Department, error) {
	return utils.FetchAllModels[Department](ctx)
}

func GetTitles(ctx context.Context) ([]*Title, error) {
	return utils.FetchAllModels[Title](ctx)
}

func GetPaymentRecipients(ctx context.Context) ([]*PaymentRecipient, error) {
	return utils.FetchAllModels[PaymentRecipient](ctx)
}
