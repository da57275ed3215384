package models

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
)

type ApprovalStep struct {
	ApproverId string `json:"approver_id"`
}

type ApprovalSteps []ApprovalStep

func (steps ApprovalSteps) Value() (driver.Value, error) {
	return json.Marshal(steps)
}

func (steps *ApprovalSteps) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan approval steps: %v", value)
	}
	return json.Unmarshal(bytes, steps)
}

// ApprovalRoute is an ordered chain of approvers an application walks
// through. Steps are stored as a JSON column, level N of an application
// maps to Steps[N-1].
type ApprovalRoute struct {
	UUIDBase
	Name        string        `gorm:"size:255;not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Steps       ApprovalSteps `gorm:"type:json" json:"steps"`
	IsActive    *bool         `gorm:"not null;default:true" json:"is_active"`
	UserId      string        `gorm:"type:char(36);index" json:"user_id"`
}

type NewApprovalRoute struct {
	Name        string        `json:"name" binding:"required"`
	Description string        `json:"description"`
	Steps       ApprovalSteps `json:"steps" binding:"required"`
}

func validateApprovalSteps(ctx context.Context, steps ApprovalSteps) error {
	if len(steps) == 0 {
		return errors.New("approval route needs at least one step")
	}
	approverIds := make([]string, 0, len(steps))
	for _, step := range steps {
		if step.ApproverId == "" {
			return errors.New("approval step is missing an approver")
		}
		approverIds = append(approverIds, step.ApproverId)
	}
	return utils.ValidateResourcesId[User](ctx, utils.UniqueSlice(approverIds))
}

func CreateApprovalRoute(ctx context.Context, input *NewApprovalRoute) (*ApprovalRoute, error) {
	if err := validateApprovalSteps(ctx, input.Steps); err != nil {
		return nil, err
	}
	userId, _ := utils.GetUserIdFromContext(ctx)
	route := ApprovalRoute{
		Name:        input.Name,
		Description: input.Description,
		Steps:       input.Steps,
		IsActive:    utils.NewTrue(),
		UserId:      userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func UpdateApprovalRoute(ctx context.Context, id string, input *NewApprovalRoute) (*ApprovalRoute, error) {
	route, err := utils.FetchModel[ApprovalRoute](ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateApprovalSteps(ctx, input.Steps); err != nil {
		return nil, err
	}
	route.Name = input.Name
	route.Description = input.Description
	route.Steps = input.Steps

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(route).Error; err != nil {
		return nil, err
	}
	return route, nil
}

func GetApprovalRoutes(ctx context.Context) ([]*ApprovalRoute, error) {
	return utils.FetchAllModels[ApprovalRoute](ctx)
}

func GetApprovalRoute(ctx context.Context, id string) (*ApprovalRoute, error) {
	return utils.FetchModel[ApprovalRoute](ctx, id)
}

func DeleteApprovalRoute(ctx context.Context, id string) (*ApprovalRoute, error) {
	count, err := utils.ResourceCountWhere[Application](ctx, "route_id = ? AND status = ?", id, ApplicationStatusPending)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("route has pending applications")
	}
	return utils.DeleteModel[ApprovalRoute](ctx, id)
}
