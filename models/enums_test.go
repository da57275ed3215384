package models

import "testing"

func TestInvoiceStatusTransitions(t *testing.T) {
	cases := []struct {
		from    InvoiceStatus
		to      InvoiceStatus
		allowed bool
	}{
		{InvoiceStatusUninvoiced, InvoiceStatusInvoiced, true},
		{InvoiceStatusInvoiced, InvoiceStatusPaid, true},
		{InvoiceStatusUninvoiced, InvoiceStatusPaid, false},
		{InvoiceStatusInvoiced, InvoiceStatusUninvoiced, false},
		{InvoiceStatusPaid, InvoiceStatusInvoiced, false},
		{InvoiceStatusPaid, InvoiceStatusUninvoiced, false},
		{InvoiceStatusPaid, InvoiceStatusPaid, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.allowed {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestApplicationStatusTerminal(t *testing.T) {
	if ApplicationStatusPending.Terminal() {
		t.Fatal("pending_approval must not be terminal")
	}
	if !ApplicationStatusApproved.Terminal() {
		t.Fatal("approved must be terminal")
	}
	if !ApplicationStatusRejected.Terminal() {
		t.Fatal("rejected must be terminal")
	}
}

func TestJobStatusValid(t *testing.T) {
	for _, s := range []JobStatus{JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusDelivered, JobStatusCancelled} {
		if !s.Valid() {
			t.Fatalf("%s should be valid", s)
		}
	}
	if JobStatus("Paused").Valid() {
		t.Fatal("unknown status should be invalid")
	}
}
