package models

import "github.com/daiwaprint/erp_backend/config"

func MigrateDatabase() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&User{},
		&Customer{},
		&Lead{},
		&Job{},
		&Estimate{},
		&Invoice{},
		&InvoiceItem{},
		&PurchaseOrder{},
		&InventoryItem{},
		&Project{},
		&ProjectAttachment{},
		&ApprovalRoute{},
		&Application{},
		&InboxItem{},
		&AccountItem{},
		&JournalEntry{},
		&JournalLine{},
		&AllocationDivision{},
		&Department{},
		&Title{},
		&PaymentRecipient{},
		&AnalysisHistory{},
		&BugReport{},
	)
}
