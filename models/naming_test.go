package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/daiwaprint/erp_backend/utils"
)

// Column/json names follow one generic rule derived from the Go field
// name. Entities with bespoke columns declare them here explicitly so a
// new field can't silently drift from the convention.
var namingExceptions = map[string]map[string]string{
	"Customer": {
		"Address1": "address_1",
		"Address2": "address_2",
	},
	"CustomerEnrichment": {
		"Address1": "address_1",
	},
}

func checkFieldNaming(t *testing.T, model interface{}) {
	t.Helper()
	typ := reflect.TypeOf(model)
	exceptions := namingExceptions[typ.Name()]

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Anonymous {
			continue
		}
		jsonTag := strings.Split(field.Tag.Get("json"), ",")[0]
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		expected := utils.CamelToSnake(field.Name)
		if override, ok := exceptions[field.Name]; ok {
			expected = override
		}
		if jsonTag != expected {
			t.Errorf("%s.%s: json tag %q, expected %q", typ.Name(), field.Name, jsonTag, expected)
		}
	}
}

func TestFieldNamingSymmetry(t *testing.T) {
	for _, model := range []interface{}{
		Job{}, Customer{}, CustomerEnrichment{}, Lead{}, Estimate{},
		Invoice{}, InvoiceItem{}, PurchaseOrder{}, InventoryItem{},
		Project{}, ProjectAttachment{}, ApprovalRoute{}, Application{},
		InboxItem{}, User{}, AccountItem{}, JournalEntry{}, JournalLine{},
		AnalysisHistory{}, BugReport{},
	} {
		checkFieldNaming(t, model)
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"JobNumber":      "job_number",
		"ClientName":     "client_name",
		"UtmSource":      "utm_source",
		"Address1":       "address1",
		"WebsiteUrl":     "website_url",
		"ReadyToInvoice": "ready_to_invoice",
	}
	for in, want := range cases {
		if got := utils.CamelToSnake(in); got != want {
			t.Fatalf("CamelToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}
