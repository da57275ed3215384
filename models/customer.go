package models

import (
	"context"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/utils"
)

type Customer struct {
	UUIDBase
	CompanyName    string `gorm:"size:255;not null" json:"company_name"`
	ContactPerson  string `gorm:"size:255" json:"contact_person"`
	Email          string `gorm:"size:255" json:"email"`
	Phone          string `gorm:"size:50" json:"phone"`
	Address1       string `gorm:"column:address_1;size:255" json:"address_1"`
	Address2       string `gorm:"column:address_2;size:255" json:"address_2"`
	PostalCode     string `gorm:"size:20" json:"postal_code"`
	Industry       string `gorm:"size:100" json:"industry"`
	EmployeeCount  *int   `gorm:"default:null" json:"employee_count"`
	CapitalAmount  *int64 `gorm:"default:null" json:"capital_amount"`
	WebsiteUrl     string `gorm:"size:500" json:"website_url"`
	Representative string `gorm:"size:255" json:"representative"`
	Notes          string `gorm:"type:text" json:"notes"`
	UserId         string `gorm:"type:char(36);index" json:"user_id"`
}

type NewCustomer struct {
	CompanyName    string `json:"company_name" binding:"required"`
	ContactPerson  string `json:"contact_person"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address1       string `json:"address_1"`
	Address2       string `json:"address_2"`
	PostalCode     string `json:"postal_code"`
	Industry       string `json:"industry"`
	EmployeeCount  *int   `json:"employee_count"`
	CapitalAmount  *int64 `json:"capital_amount"`
	WebsiteUrl     string `json:"website_url"`
	Representative string `json:"representative"`
	Notes          string `json:"notes"`
}

// CustomerEnrichment holds AI-sourced fields. Pointers keep absent fields
// from clobbering operator-entered data.
type CustomerEnrichment struct {
	Industry       *string `json:"industry"`
	EmployeeCount  *int    `json:"employee_count"`
	CapitalAmount  *int64  `json:"capital_amount"`
	WebsiteUrl     *string `json:"website_url"`
	Representative *string `json:"representative"`
	Address1       *string `json:"address_1"`
	PostalCode     *string `json:"postal_code"`
	Notes          *string `json:"notes"`
}

func CreateCustomer(ctx context.Context, input *NewCustomer) (*Customer, error) {
	if input.Phone != "" {
		input.Phone = utils.NormalizePhoneNumber(input.Phone, "JP")
	}
	userId, _ := utils.GetUserIdFromContext(ctx)
	customer := Customer{
		CompanyName:    input.CompanyName,
		ContactPerson:  input.ContactPerson,
		Email:          input.Email,
		Phone:          input.Phone,
		Address1:       input.Address1,
		Address2:       input.Address2,
		PostalCode:     input.PostalCode,
		Industry:       input.Industry,
		EmployeeCount:  input.EmployeeCount,
		CapitalAmount:  input.CapitalAmount,
		WebsiteUrl:     input.WebsiteUrl,
		Representative: input.Representative,
		Notes:          input.Notes,
		UserId:         userId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func UpdateCustomer(ctx context.Context, id string, input *NewCustomer) (*Customer, error) {
	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}
	customer.CompanyName = input.CompanyName
	customer.ContactPerson = input.ContactPerson
	customer.Email = input.Email
	customer.Phone = input.Phone
	customer.Address1 = input.Address1
	customer.Address2 = input.Address2
	customer.PostalCode = input.PostalCode
	customer.Industry = input.Industry
	customer.EmployeeCount = input.EmployeeCount
	customer.CapitalAmount = input.CapitalAmount
	customer.WebsiteUrl = input.WebsiteUrl
	customer.Representative = input.Representative
	customer.Notes = input.Notes

	db := config.GetDB()
	if err := db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// ApplyCustomerEnrichment merges AI-researched fields into a customer
// record, only overwriting columns the enrichment actually carries.
func ApplyCustomerEnrichment(ctx context.Context, id string, enrichment *CustomerEnrichment) (*Customer, error) {
	customer, err := utils.FetchModel[Customer](ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if enrichment.Industry != nil {
		updates["industry"] = *enrichment.Industry
	}
	if enrichment.EmployeeCount != nil {
		updates["employee_count"] = *enrichment.EmployeeCount
	}
	if enrichment.CapitalAmount != nil {
		updates["capital_amount"] = *enrichment.CapitalAmount
	}
	if enrichment.WebsiteUrl != nil {
		updates["website_url"] = *enrichment.WebsiteUrl
	}
	if enrichment.Representative != nil {
		updates["representative"] = *enrichment.Representative
	}
	if enrichment.Address1 != nil {
		updates["address_1"] = *enrichment.Address1
	}
	if enrichment.PostalCode != nil {
		updates["postal_code"] = *enrichment.PostalCode
	}
	if enrichment.Notes != nil {
		updates["notes"] = *enrichment.Notes
	}
	if len(updates) == 0 {
		return customer, nil
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(customer).Updates(updates).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func GetCustomers(ctx context.Context) ([]*Customer, error) {
	return utils.FetchAllModels[Customer](ctx)
}

func GetCustomer(ctx context.Context, id string) (*Customer, error) {
	return utils.FetchModel[Customer](ctx, id)
}

func DeleteCustomer(ctx context.Context, id string) (*Customer, error) {
	return utils.DeleteModel[Customer](ctx, id)
}
