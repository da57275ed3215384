package ai

import "testing"

func TestRoughExtractLineItems(t *testing.T) {
	text := "名刺 100部 @¥2,500\nポスター 50枚 ¥30,000\nその他ご相談ください"
	items := roughExtractLineItems(text)

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Name != "名刺 100部" {
		t.Fatalf("item 0 name expected 名刺 100部, got %q", items[0].Name)
	}
	if items[0].Quantity.String() != "100" {
		t.Fatalf("item 0 quantity expected 100, got %s", items[0].Quantity)
	}
	if items[0].UnitPrice.String() != "2500" {
		t.Fatalf("item 0 unit price expected 2500, got %s", items[0].UnitPrice)
	}
	if items[1].Quantity.String() != "50" {
		t.Fatalf("item 1 quantity expected 50, got %s", items[1].Quantity)
	}
	if items[1].UnitPrice.String() != "30000" {
		t.Fatalf("item 1 unit price expected 30000, got %s", items[1].UnitPrice)
	}
	for i, item := range items {
		if item.TaxRate.String() != "0.1" {
			t.Fatalf("item %d tax rate expected 0.1, got %s", i, item.TaxRate)
		}
	}
}

func TestRoughExtractLineItems_SuffixYen(t *testing.T) {
	items := roughExtractLineItems("封筒 300枚 4500円")
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Quantity.String() != "300" {
		t.Fatalf("quantity expected 300, got %s", items[0].Quantity)
	}
	if items[0].UnitPrice.String() != "4500" {
		t.Fatalf("unit price expected 4500, got %s", items[0].UnitPrice)
	}
}

func TestRoughExtractLineItems_FallbackLine(t *testing.T) {
	for _, text := range []string{"", "お見積りお願いします", "内容は追ってご連絡します\nよろしくお願いします"} {
		items := roughExtractLineItems(text)
		if len(items) != 1 {
			t.Fatalf("%q: expected single fallback item, got %d", text, len(items))
		}
		if items[0].Name != "一式" {
			t.Fatalf("%q: fallback name expected 一式, got %q", text, items[0].Name)
		}
		if items[0].Quantity.String() != "1" {
			t.Fatalf("%q: fallback quantity expected 1, got %s", text, items[0].Quantity)
		}
		if !items[0].UnitPrice.IsZero() {
			t.Fatalf("%q: fallback unit price expected 0, got %s", text, items[0].UnitPrice)
		}
	}
}
