package models

import (
	"context"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"gorm.io/gorm"
)

type Project struct {
	UUIDBase
	Name         string              `gorm:"size:255;not null" json:"name"`
	CustomerId   *string             `gorm:"type:char(36);index;default:null" json:"customer_id"`
	CustomerName string              `gorm:"size:255" json:"customer_name"`
	Status       ProjectStatus       `gorm:"size:20;not null" json:"status"`
	StartDate    *time.Time          `gorm:"default:null" json:"start_date"`
	EndDate      *time.Time          `gorm:"default:null" json:"end_date"`
	Description  string              `gorm:"type:text" json:"description"`
	Attachments  []ProjectAttachment `gorm:"foreignKey:ProjectId" json:"attachments"`
	UserId       string              `gorm:"type:char(36);index" json:"user_id"`
}

type ProjectAttachment struct {
	UUIDBase
	ProjectId string `gorm:"type:char(36);index;not null" json:"project_id"`
	FileName  string `gorm:"size:255;not null" json:"file_name"`
	ObjectKey string `gorm:"size:500;not null" json:"object_key"`
	MimeType  string `gorm:"size:100" json:"mime_type"`
	FileUrl   string `gorm:"-" json:"file_url"`
	UserId    string `gorm:"type:char(36);index" json:"user_id"`
}

func (a *ProjectAttachment) AfterFind(tx *gorm.DB) error {
	a.FileUrl = utils.BuildObjectAccessURL(utils.BucketProjectFiles, a.ObjectKey)
	return nil
}

type NewProject struct {
	Name         string        `json:"name" binding:"required"`
	CustomerId   *string       `json:"customer_id"`
	CustomerName string        `json:"customer_name"`
	Status       ProjectStatus `json:"status"`
	StartDate    *time.Time    `json:"start_date"`
	EndDate      *time.Time    `json:"end_date"`
	Description  string        `json:"description"`
}

func CreateProject(ctx context.Context, input *NewProject) (*Project, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	status := input.Status
	if status == "" {
		status = ProjectStatusActive
	}
	project := Project{
		Name:         input.Name,
		CustomerId:   input.CustomerId,
		CustomerName: input.CustomerName,
		Status:       status,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Description:  input.Description,
		UserId:       userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func UpdateProject(ctx context.Context, id string, input *NewProject) (*Project, error) {
	project, err := utils.FetchModel[Project](ctx, id)
	if err != nil {
		return nil, err
	}
	project.Name = input.Name
	project.CustomerId = input.CustomerId
	project.CustomerName = input.CustomerName
	if input.Status != "" {
		project.Status = input.Status
	}
	project.StartDate = input.StartDate
	project.EndDate = input.EndDate
	project.Description = input.Description

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

func AddProjectAttachment(ctx context.Context, projectId, fileName, objectKey, mimeType string) (*ProjectAttachment, error) {
	if err := utils.ValidateResourceId[Project](ctx, projectId); err != nil {
		return nil, err
	}
	userId, _ := utils.GetUserIdFromContext(ctx)
	attachment := ProjectAttachment{
		ProjectId: projectId,
		FileName:  fileName,
		ObjectKey: objectKey,
		MimeType:  mimeType,
		UserId:    userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&attachment).Error; err != nil {
		return nil, err
	}
	attachment.FileUrl = utils.BuildObjectAccessURL(utils.BucketProjectFiles, attachment.ObjectKey)
	return &attachment, nil
}

func DeleteProjectAttachment(ctx context.Context, id string) (*ProjectAttachment, error) {
	attachment, err := utils.FetchModel[ProjectAttachment](ctx, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(attachment).Error; err != nil {
		return nil, err
	}
	return attachment, nil
}

func GetProjects(ctx context.Context) ([]*Project, error) {
	return utils.FetchAllModels[Project](ctx, "Attachments")
}

func GetProject(ctx context.Context, id string) (*Project, error) {
	return utils.FetchModel[Project](ctx, id, "Attachments")
}

func DeleteProject(ctx context.Context, id string) (*Project, error) {
	return utils.DeleteModel[Project](ctx, id)
}
