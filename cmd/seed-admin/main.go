package main

import (
	"context"
	"log"
	"os"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/utils"
)

// Seeds the first admin account and the default masters. Safe to run
// more than once: existing records are left alone.

var defaultAccountItems = []models.NewAccountItem{
	{Code: "5001", Name: "Paper and materials", Category: "COGS", CostType: models.CostTypeVariable},
	{Code: "5002", Name: "Outsourced printing", Category: "COGS", CostType: models.CostTypeVariable},
	{Code: "5003", Name: "Delivery", Category: "COGS", CostType: models.CostTypeVariable},
	{Code: "6001", Name: "Rent", Category: "SG&A", CostType: models.CostTypeFixed},
	{Code: "6002", Name: "Utilities", Category: "SG&A", CostType: models.CostTypeFixed},
	{Code: "6003", Name: "Salaries", Category: "SG&A", CostType: models.CostTypeFixed},
	{Code: "6004", Name: "Supplies", Category: "SG&A", CostType: models.CostTypeVariable},
	{Code: "1001", Name: "Cash", Category: "Assets", CostType: models.CostTypeFixed},
	{Code: "2001", Name: "Accounts payable", Category: "Liabilities", CostType: models.CostTypeFixed},
}

var defaultDepartments = []string{"Sales", "Production", "Administration"}
var defaultTitles = []string{"Manager", "Chief", "Staff"}

func main() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	config.ConnectDatabaseWithRetry()
	if err := models.MigrateDatabase(); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx := context.Background()

	if _, err := models.GetUserByEmail(ctx, email); err == nil {
		log.Printf("admin %s already exists, skipping user seed", email)
	} else {
		admin, err := models.CreateUser(ctx, &models.NewUser{
			Name:     name,
			Email:    email,
			Password: password,
			Role:     models.UserRoleAdmin,
		})
		if err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("created admin %s (%s)", admin.Email, admin.ID)
	}

	for _, item := range defaultAccountItems {
		if _, err := models.SaveAccountItem(ctx, &item); err != nil {
			log.Fatalf("seed account item %s: %v", item.Code, err)
		}
	}

	for _, departmentName := range defaultDepartments {
		if err := utils.ValidateUnique[models.Department](ctx, "name", departmentName, nil); err != nil {
			continue
		}
		if _, err := models.CreateNamedMaster(ctx, &models.Department{Name: departmentName}); err != nil {
			log.Fatalf("seed department %s: %v", departmentName, err)
		}
	}
	for _, titleName := range defaultTitles {
		if err := utils.ValidateUnique[models.Title](ctx, "name", titleName, nil); err != nil {
			continue
		}
		if _, err := models.CreateNamedMaster(ctx, &models.Title{Name: titleName}); err != nil {
			log.Fatalf("seed title %s: %v", titleName, err)
		}
	}

	log.Println("seed completed")
}
