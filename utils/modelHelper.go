package utils

import (
	"context"
	"errors"

	"github.com/daiwaprint/erp_backend/config"
	"gorm.io/gorm"
)

/* DB fetching */

// mapNotFound keeps ErrorRecordNotFound for missing rows only. Any other
// DB error (connectivity included) passes through so it keeps its
// classification upstream.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorRecordNotFound
	}
	return err
}

// fetch model from db by primary key
// (may return ErrorRecordNotFound)
func FetchModel[T any](ctx context.Context, id string, associations ...string) (*T, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var result T
	if err := dbCtx.First(&result, "id = ?", id).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &result, nil
}

// fetch all models from db, newest first
func FetchAllModels[T any](ctx context.Context, associations ...string) ([]*T, error) {
	db := config.GetDB()
	dbCtx := db.WithContext(ctx)
	for _, field := range associations {
		dbCtx = dbCtx.Preload(field)
	}
	var results []*T
	err := dbCtx.Order("created_at DESC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// count records matching condition
func ResourceCountWhere[T any](ctx context.Context, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&model).Where(condition, value...).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteModel removes a row by primary key after confirming it exists.
func DeleteModel[T any](ctx context.Context, id string) (*T, error) {
	record, err := FetchModel[T](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}
