package utils

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestMapNotFound(t *testing.T) {
	if err := mapNotFound(gorm.ErrRecordNotFound); !errors.Is(err, ErrorRecordNotFound) {
		t.Fatalf("expected ErrorRecordNotFound, got %v", err)
	}
	if err := mapNotFound(fmt.Errorf("query: %w", gorm.ErrRecordNotFound)); !errors.Is(err, ErrorRecordNotFound) {
		t.Fatalf("expected wrapped gorm not-found to map, got %v", err)
	}
	if err := mapNotFound(nil); err != nil {
		t.Fatalf("expected nil to stay nil, got %v", err)
	}

	// Connectivity failures must keep their identity so they classify as
	// unavailable upstream instead of turning into a 404.
	dialErr := errors.New("dial tcp 10.0.0.5:3306: connection refused")
	mapped := mapNotFound(dialErr)
	if !errors.Is(mapped, dialErr) {
		t.Fatalf("expected the original error back, got %v", mapped)
	}
	if errors.Is(mapped, ErrorRecordNotFound) {
		t.Fatalf("connectivity error must not map to ErrorRecordNotFound")
	}
	if !IsUnavailableError(mapped) {
		t.Fatalf("expected %v to still classify as unavailable", mapped)
	}
}
