package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsUnavailableError(t *testing.T) {
	unavailable := []error{
		errors.New("network error"),
		errors.New("Failed to fetch"),
		errors.New("fetch failed: context closed"),
		errors.New("dial tcp: connection refused"),
		errors.New("lookup api.example: no such host"),
		fmt.Errorf("request: %w", errors.New("read tcp: i/o timeout")),
	}
	for _, err := range unavailable {
		if !IsUnavailableError(err) {
			t.Fatalf("expected %v to classify as unavailable", err)
		}
	}

	ordinary := []error{
		nil,
		errors.New("record not found"),
		errors.New("invalid JSON"),
		ErrorRecordNotFound,
	}
	for _, err := range ordinary {
		if IsUnavailableError(err) {
			t.Fatalf("expected %v not to classify as unavailable", err)
		}
	}
}
