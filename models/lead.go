package models

import (
	"context"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
)

type Lead struct {
	UUIDBase
	CompanyName   string     `gorm:"size:255;not null" json:"company_name"`
	ContactPerson string     `gorm:"size:255" json:"contact_person"`
	Email         string     `gorm:"size:255" json:"email"`
	Phone         string     `gorm:"size:50" json:"phone"`
	Status        LeadStatus `gorm:"size:30;not null" json:"status"`
	Source        string     `gorm:"size:100" json:"source"`
	Message       string     `gorm:"type:text" json:"message"`
	UtmSource     string     `gorm:"size:100" json:"utm_source"`
	UtmMedium     string     `gorm:"size:100" json:"utm_medium"`
	UtmCampaign   string     `gorm:"size:100" json:"utm_campaign"`
	ReferrerUrl   string     `gorm:"size:500" json:"referrer_url"`
	AiAnalysis    string     `gorm:"type:text" json:"ai_analysis"`
	RepliedAt     *time.Time `gorm:"default:null" json:"replied_at"`
	CustomerId    *string    `gorm:"type:char(36);index;default:null" json:"customer_id"`
	UserId        string     `gorm:"type:char(36);index" json:"user_id"`
}

type NewLead struct {
	CompanyName   string     `json:"company_name" binding:"required"`
	ContactPerson string     `json:"contact_person"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Status        LeadStatus `json:"status"`
	Source        string     `json:"source"`
	Message       string     `json:"message"`
	UtmSource     string     `json:"utm_source"`
	UtmMedium     string     `json:"utm_medium"`
	UtmCampaign   string     `json:"utm_campaign"`
	ReferrerUrl   string     `json:"referrer_url"`
}

type UpdateLeadInput struct {
	CompanyName   *string     `json:"company_name"`
	ContactPerson *string     `json:"contact_person"`
	Email         *string     `json:"email"`
	Phone         *string     `json:"phone"`
	Status        *LeadStatus `json:"status"`
	Source        *string     `json:"source"`
	Message       *string     `json:"message"`
	AiAnalysis    *string     `json:"ai_analysis"`
	RepliedAt     *time.Time  `json:"replied_at"`
	CustomerId    *string     `json:"customer_id"`
}

func CreateLead(ctx context.Context, input *NewLead) (*Lead, error) {
	userId, _ := utils.GetUserIdFromContext(ctx)
	status := input.Status
	if status == "" {
		status = LeadStatusNew
	}
	lead := Lead{
		CompanyName:   input.CompanyName,
		ContactPerson: input.ContactPerson,
		Email:         input.Email,
		Phone:         input.Phone,
		Status:        status,
		Source:        input.Source,
		Message:       input.Message,
		UtmSource:     input.UtmSource,
		UtmMedium:     input.UtmMedium,
		UtmCampaign:   input.UtmCampaign,
		ReferrerUrl:   input.ReferrerUrl,
		UserId:        userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&lead).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func UpdateLead(ctx context.Context, id string, input *UpdateLeadInput) (*Lead, error) {
	lead, err := utils.FetchModel[Lead](ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.CompanyName != nil {
		updates["company_name"] = *input.CompanyName
	}
	if input.ContactPerson != nil {
		updates["contact_person"] = *input.ContactPerson
	}
	if input.Email != nil {
		updates["email"] = *input.Email
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.Source != nil {
		updates["source"] = *input.Source
	}
	if input.Message != nil {
		updates["message"] = *input.Message
	}
	if input.AiAnalysis != nil {
		updates["ai_analysis"] = *input.AiAnalysis
	}
	if input.RepliedAt != nil {
		updates["replied_at"] = *input.RepliedAt
	}
	if input.CustomerId != nil {
		updates["customer_id"] = *input.CustomerId
	}
	if len(updates) == 0 {
		return lead, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(lead).Updates(updates).Error; err != nil {
		return nil, err
	}
	return lead, nil
}

// ConvertLeadToCustomer promotes a lead into the customer book and links
// the two records.
func ConvertLeadToCustomer(ctx context.Context, id string) (*Customer, error) {
	lead, err := utils.FetchModel[Lead](ctx, id)
	if err != nil {
		return nil, err
	}
	customer, err := CreateCustomer(ctx, &NewCustomer{
		CompanyName:   lead.CompanyName,
		ContactPerson: lead.ContactPerson,
		Email:         lead.Email,
		Phone:         lead.Phone,
		Notes:         lead.Message,
	})
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	err = db.WithContext(ctx).Model(lead).Updates(map[string]interface{}{
		"status":      LeadStatusWon,
		"customer_id": customer.ID,
	}).Error
	if err != nil {
		return nil, err
	}
	return customer, nil
}

func GetLeads(ctx context.Context) ([]*Lead, error) {
	return utils.FetchAllModels[Lead](ctx)
}

func GetLead(ctx context.Context, id string) (*Lead, error) {
	return utils.FetchModel[Lead](ctx, id)
}

func DeleteLead(ctx context.Context, id string) (*Lead, error) {
	return utils.DeleteModel[Lead](ctx, id)
}
