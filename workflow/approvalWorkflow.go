package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/utils"
	"gorm.io/gorm"
)

var (
	ErrRouteMisconfigured  = errors.New("approval route is misconfigured")
	ErrApplicationFinished = errors.New("application is already decided")
	ErrNotCurrentApprover  = errors.New("user is not the current approver")
	ErrReasonRequired      = errors.New("rejection reason is required")
)

// StepDecision is what walking one approval step yields: either the next
// approver to hand the application to, or completion.
type StepDecision struct {
	Done           bool
	NextLevel      int
	NextApproverId string
}

// WalkApprovalStep advances one level through a route's steps. Levels are
// 1-based; approving at the final level finishes the walk.
func WalkApprovalStep(steps models.ApprovalSteps, currentLevel int) (StepDecision, error) {
	if currentLevel < 1 || currentLevel > len(steps) {
		return StepDecision{}, ErrRouteMisconfigured
	}
	next := currentLevel + 1
	if next > len(steps) {
		return StepDecision{Done: true}, nil
	}
	if steps[next-1].ApproverId == "" {
		return StepDecision{}, ErrRouteMisconfigured
	}
	return StepDecision{NextLevel: next, NextApproverId: steps[next-1].ApproverId}, nil
}

// FirstApprover validates a route can start a walk at all.
func FirstApprover(steps models.ApprovalSteps) (string, error) {
	if len(steps) == 0 || steps[0].ApproverId == "" {
		return "", ErrRouteMisconfigured
	}
	return steps[0].ApproverId, nil
}

// SubmitApplication creates an application at level 1 of its route and
// notifies the first approver.
func SubmitApplication(ctx context.Context, input *models.NewApplication) (*models.Application, error) {
	route, err := models.GetApprovalRoute(ctx, input.RouteId)
	if err != nil {
		return nil, err
	}
	firstApprover, err := FirstApprover(route.Steps)
	if err != nil {
		return nil, err
	}

	applicantId, _ := utils.GetUserIdFromContext(ctx)
	app := models.Application{
		Title:             input.Title,
		Category:          input.Category,
		Amount:            input.Amount,
		Body:              input.Body,
		Status:            models.ApplicationStatusPending,
		RouteId:           route.ID,
		ApplicantId:       applicantId,
		CurrentLevel:      1,
		CurrentApproverId: &firstApprover,
		AttachmentKey:     input.AttachmentKey,
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return models.CreateApplication(ctx, tx, &app)
	})
	if err != nil {
		return nil, err
	}

	publishApprovalEvent(ctx, &app)
	return &app, nil
}

// ApproveApplication advances the application one level, or finishes it
// when the caller was the last approver.
func ApproveApplication(ctx context.Context, id string) (*models.Application, error) {
	app, err := models.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status.Terminal() {
		return nil, ErrApplicationFinished
	}
	if err := checkCurrentApprover(ctx, app); err != nil {
		return nil, err
	}
	if app.Route == nil {
		return nil, ErrRouteMisconfigured
	}

	decision, err := WalkApprovalStep(app.Route.Steps, app.CurrentLevel)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	updates := map[string]interface{}{}
	if decision.Done {
		now := time.Now()
		updates["status"] = models.ApplicationStatusApproved
		updates["current_approver_id"] = nil
		updates["approved_at"] = now
	} else {
		updates["current_level"] = decision.NextLevel
		updates["current_approver_id"] = decision.NextApproverId
	}
	if err := db.WithContext(ctx).Model(app).Updates(updates).Error; err != nil {
		return nil, err
	}

	app, err = models.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	publishApprovalEvent(ctx, app)
	return app, nil
}

// RejectApplication finishes the application as rejected. A reason is
// mandatory so the applicant knows what to fix before resubmitting.
func RejectApplication(ctx context.Context, id string, reason string) (*models.Application, error) {
	if reason == "" {
		return nil, ErrReasonRequired
	}
	app, err := models.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	if app.Status.Terminal() {
		return nil, ErrApplicationFinished
	}
	if err := checkCurrentApprover(ctx, app); err != nil {
		return nil, err
	}

	now := time.Now()
	db := config.GetDB()
	err = db.WithContext(ctx).Model(app).Updates(map[string]interface{}{
		"status":              models.ApplicationStatusRejected,
		"current_approver_id": nil,
		"rejection_reason":    reason,
		"rejected_at":         now,
	}).Error
	if err != nil {
		return nil, err
	}

	app, err = models.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	publishApprovalEvent(ctx, app)
	return app, nil
}

func checkCurrentApprover(ctx context.Context, app *models.Application) error {
	if isAdmin, _ := utils.GetIsAdminFromContext(ctx); isAdmin {
		return nil
	}
	userId, _ := utils.GetUserIdFromContext(ctx)
	if app.CurrentApproverId == nil || *app.CurrentApproverId != userId {
		return ErrNotCurrentApprover
	}
	return nil
}

func publishApprovalEvent(ctx context.Context, app *models.Application) {
	correlationId, _ := utils.GetCorrelationIdFromContext(ctx)
	actorId, _ := utils.GetUserIdFromContext(ctx)
	actorName, _ := utils.GetUserNameFromContext(ctx)
	event := config.ApprovalEvent{
		ApplicationId: app.ID,
		ApplicantId:   app.ApplicantId,
		ApproverId:    actorId,
		ActorName:     actorName,
		Status:        string(app.Status),
		CurrentLevel:  app.CurrentLevel,
		CorrelationId: correlationId,
	}
	if app.CurrentApproverId != nil {
		event.NextApproverId = *app.CurrentApproverId
	}
	if app.RejectionReason != "" {
		event.RejectionReason = app.RejectionReason
	}
	switch {
	case app.ApprovedAt != nil:
		event.DecidedAt = *app.ApprovedAt
	case app.RejectedAt != nil:
		event.DecidedAt = *app.RejectedAt
	}
	if err := config.PublishApprovalEvent(ctx, event); err != nil {
		logger := config.GetLogger()
		config.LogError(logger, "workflow", "publishApprovalEvent", app.ID, nil, err)
	}
}
