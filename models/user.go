package models

import (
	"context"
	"errors"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
	"gorm.io/gorm"
)

type User struct {
	UUIDBase
	Name                   string   `gorm:"size:255;not null" json:"name"`
	Email                  string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password               string   `gorm:"size:255;not null" json:"-"`
	Role                   UserRole `gorm:"size:20;not null;default:user" json:"role"`
	DepartmentId           *string  `gorm:"type:char(36);index;default:null" json:"department_id"`
	TitleId                *string  `gorm:"type:char(36);index;default:null" json:"title_id"`
	CanUseAnythingAnalysis *bool    `gorm:"not null;default:true" json:"can_use_anything_analysis"`
	IsActive               *bool    `gorm:"not null;default:true" json:"is_active"`
}

type NewUser struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required"`
	Password     string   `json:"password" binding:"required"`
	Role         UserRole `json:"role"`
	DepartmentId *string  `json:"department_id"`
	TitleId      *string  `json:"title_id"`
}

func CreateUser(ctx context.Context, input *NewUser) (*User, error) {
	if !utils.IsValidEmail(input.Email) {
		return nil, errors.New("invalid email address")
	}
	if err := utils.ValidateUnique[User](ctx, "email", input.Email, nil); err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	role := input.Role
	if role == "" {
		role = UserRoleUser
	}
	user := User{
		Name:                   input.Name,
		Email:                  input.Email,
		Password:               string(hashed),
		Role:                   role,
		DepartmentId:           input.DepartmentId,
		TitleId:                input.TitleId,
		CanUseAnythingAnalysis: utils.NewTrue(),
		IsActive:               utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func GetUserByEmail(ctx context.Context, email string) (*User, error) {
	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.ErrorRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// provisionedEmail synthesizes a per-user placeholder for profiles created
// from a token that carries no email claim. The email column is unique, so
// a shared empty string would block every provisioning after the first.
func provisionedEmail(userId string) string {
	return userId + "@provisioned.local"
}

// ResolveUserSession returns the profile for the authenticated user,
// provisioning a default one on first sight. Provisioned profiles start
// with the plain user role and analysis access enabled; nothing ever
// flips those back automatically.
func ResolveUserSession(ctx context.Context, userId, name, email string) (*User, error) {
	user, err := utils.FetchModel[User](ctx, userId)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, utils.ErrorRecordNotFound) {
		return nil, err
	}

	if email == "" {
		email = provisionedEmail(userId)
	}
	provisioned := User{
		UUIDBase:               UUIDBase{ID: userId},
		Name:                   name,
		Email:                  email,
		Role:                   UserRoleUser,
		CanUseAnythingAnalysis: utils.NewTrue(),
		IsActive:               utils.NewTrue(),
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&provisioned).Error; err != nil {
		return nil, err
	}
	return &provisioned, nil
}

func GetUsers(ctx context.Context) ([]*User, error) {
	return utils.FetchAllModels[User](ctx)
}

func GetUser(ctx context.Context, id string) (*User, error) {
	return utils.FetchModel[User](ctx, id)
}
