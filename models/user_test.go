package models

import (
	"testing"

	"github.com/daiwaprint/erp_backend/utils"
)

func TestProvisionedEmail(t *testing.T) {
	first := provisionedEmail("7f9b2c1e-0a34-4d5f-9c1b-2e8a7d6f5c40")
	second := provisionedEmail("0c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f")

	// The column is unique, so placeholders must differ per user.
	if first == second {
		t.Fatalf("placeholders collided: %q", first)
	}
	if !utils.IsValidEmail(first) {
		t.Fatalf("placeholder %q is not a valid email", first)
	}
	if !utils.IsValidEmail(second) {
		t.Fatalf("placeholder %q is not a valid email", second)
	}
}
