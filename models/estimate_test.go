package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func lineItem(name string, qty, unitPrice float64) EstimateLineItem {
	return EstimateLineItem{
		Name:      name,
		Quantity:  decimal.NewFromFloat(qty),
		UnitPrice: decimal.NewFromFloat(unitPrice),
	}
}

func TestCalcEstimateTotals_TaxExclusive(t *testing.T) {
	items := EstimateLineItems{
		lineItem("Flyers", 1000, 12),        // 12000 sub, 1200 tax
		lineItem("Business cards", 3, 2500), // 7500 sub, 750 tax
	}

	out, subtotal, taxTotal, grandTotal, err := CalcEstimateTotals(items, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if subtotal.String() != "19500" {
		t.Fatalf("subtotal expected 19500, got %s", subtotal)
	}
	if taxTotal.String() != "1950" {
		t.Fatalf("tax total expected 1950, got %s", taxTotal)
	}
	if grandTotal.String() != "21450" {
		t.Fatalf("grand total expected 21450, got %s", grandTotal)
	}
	if out[0].Total.String() != "13200" {
		t.Fatalf("line 0 total expected 13200, got %s", out[0].Total)
	}
	// Unset rates default to 10%.
	if out[0].TaxRate.String() != "0.1" {
		t.Fatalf("default rate expected 0.1, got %s", out[0].TaxRate)
	}
}

func TestCalcEstimateTotals_TaxInclusive(t *testing.T) {
	items := EstimateLineItems{lineItem("Posters", 100, 110)}

	out, subtotal, taxTotal, grandTotal, err := CalcEstimateTotals(items, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 11000 entered includes 1000 of tax at 10%.
	if subtotal.String() != "11000" {
		t.Fatalf("subtotal expected 11000, got %s", subtotal)
	}
	if taxTotal.String() != "1000" {
		t.Fatalf("tax total expected 1000, got %s", taxTotal)
	}
	// Inclusive grand total is the entered amount, not amount+tax.
	if grandTotal.String() != "11000" {
		t.Fatalf("grand total expected 11000, got %s", grandTotal)
	}
	if out[0].Total.String() != "11000" {
		t.Fatalf("line total expected 11000, got %s", out[0].Total)
	}
}

func TestCalcEstimateTotals_ExplicitRate(t *testing.T) {
	items := EstimateLineItems{
		{
			Name:      "Export brochure",
			Quantity:  decimal.NewFromInt(10),
			UnitPrice: decimal.NewFromInt(500),
			TaxRate:   decimal.NewFromFloat(0.08),
		},
	}

	_, _, taxTotal, _, err := CalcEstimateTotals(items, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if taxTotal.String() != "400" {
		t.Fatalf("tax total expected 400, got %s", taxTotal)
	}
}

func TestCalcEstimateTotals_Idempotent(t *testing.T) {
	items := EstimateLineItems{
		lineItem("Flyers", 1000, 12.3),
		lineItem("Banners", 7, 999),
	}

	first, sub1, tax1, grand1, err1 := CalcEstimateTotals(items, true)
	second, sub2, tax2, grand2, err2 := CalcEstimateTotals(first, true)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}

	if !sub1.Equal(sub2) || !tax1.Equal(tax2) || !grand1.Equal(grand2) {
		t.Fatalf("recomputation drifted: (%s %s %s) vs (%s %s %s)",
			sub1, tax1, grand1, sub2, tax2, grand2)
	}
	for i := range first {
		if !first[i].Total.Equal(second[i].Total) {
			t.Fatalf("line %d total drifted: %s vs %s", i, first[i].Total, second[i].Total)
		}
	}
}

func TestCalcEstimateTotals_NegativeRate(t *testing.T) {
	// A rate of -1 would zero the tax-inclusive divisor; any negative
	// rate is rejected up front instead of reaching the division.
	for _, rate := range []float64{-1, -0.1} {
		for _, inclusive := range []bool{true, false} {
			items := EstimateLineItems{
				{
					Name:      "Flyers",
					Quantity:  decimal.NewFromInt(100),
					UnitPrice: decimal.NewFromInt(12),
					TaxRate:   decimal.NewFromFloat(rate),
				},
			}
			_, _, _, _, err := CalcEstimateTotals(items, inclusive)
			if !errors.Is(err, ErrInvalidTaxRate) {
				t.Fatalf("rate %v inclusive %v: expected ErrInvalidTaxRate, got %v", rate, inclusive, err)
			}
		}
	}
}

func TestCalcEstimateTotals_Empty(t *testing.T) {
	out, subtotal, taxTotal, grandTotal, err := CalcEstimateTotals(nil, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected no items, got %d", len(out))
	}
	if !subtotal.IsZero() || !taxTotal.IsZero() || !grandTotal.IsZero() {
		t.Fatalf("expected zero totals, got %s %s %s", subtotal, taxTotal, grandTotal)
	}
}
