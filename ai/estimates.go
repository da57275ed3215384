package ai

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/shopspring/decimal"
)

// JobParameterSuggestion fills in likely production parameters from a
// free-text job description.
type JobParameterSuggestion struct {
	Title     string  `json:"title"`
	Quantity  int     `json:"quantity"`
	PaperType string  `json:"paper_type"`
	Finishing string  `json:"finishing"`
	Details   string  `json:"details"`
	Price     float64 `json:"price"`
}

// SuggestJobParameters proposes production parameters for a print job
// described in plain language.
func (c *Client) SuggestJobParameters(ctx context.Context, description string) (*JobParameterSuggestion, error) {
	prompt := fmt.Sprintf(`A customer described a print job: %q.
Suggest JSON: {"title", "quantity" (number), "paper_type", "finishing", "details", "price" (estimated JPY, number)}.
Use common commercial print conventions. Answer with JSON only.`, description)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
		},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	suggestion, err := decodeJSON[JobParameterSuggestion](text)
	if err != nil {
		return nil, fmt.Errorf("parse job suggestion: %w", err)
	}
	return suggestion, nil
}

type parsedLineItem struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type draftEstimate struct {
	CustomerName string           `json:"customer_name"`
	Title        string           `json:"title"`
	Items        []parsedLineItem `json:"items"`
	Notes        string           `json:"notes"`
}

func toLineItems(parsed []parsedLineItem) models.EstimateLineItems {
	items := make(models.EstimateLineItems, 0, len(parsed))
	for _, p := range parsed {
		qty := p.Quantity
		if qty == 0 {
			qty = 1
		}
		items = append(items, models.EstimateLineItem{
			Name:      p.Name,
			Quantity:  decimal.NewFromFloat(qty),
			UnitPrice: decimal.NewFromFloat(p.UnitPrice),
		})
	}
	return items
}

var (
	roughTaxRate = decimal.NewFromFloat(0.1)

	roughQtyPattern   = regexp.MustCompile(`(\d+)\s*(部|枚|式|箱|冊|本|件)?`)
	roughPricePattern = regexp.MustCompile(`[@＠¥￥]\s*([\d,]+)|([\d,]+)\s*円`)
	roughNameTail     = regexp.MustCompile(`\s*[@＠].*$`)
)

// roughExtractLineItems salvages line items from free text when the
// model answer cannot be decoded. A line like 「名刺100部 @¥2,500」
// yields a name, quantity and unit price; when nothing matches, a single
// lump-sum line keeps the draft editable.
func roughExtractLineItems(text string) models.EstimateLineItems {
	var items models.EstimateLineItems
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			continue
		}
		qty := roughQtyPattern.FindStringSubmatch(line)
		price := roughPricePattern.FindStringSubmatch(line)
		if qty == nil || price == nil {
			continue
		}
		priceDigits := price[1]
		if priceDigits == "" {
			priceDigits = price[2]
		}
		quantity, _ := strconv.ParseInt(qty[1], 10, 64)
		unitPrice, _ := strconv.ParseInt(strings.ReplaceAll(priceDigits, ",", ""), 10, 64)
		items = append(items, models.EstimateLineItem{
			Name:      roughNameTail.ReplaceAllString(line, ""),
			Quantity:  decimal.NewFromInt(quantity),
			UnitPrice: decimal.NewFromInt(unitPrice),
			TaxRate:   roughTaxRate,
		})
	}
	if len(items) == 0 {
		items = append(items, models.EstimateLineItem{
			Name:      "一式",
			Quantity:  decimal.NewFromInt(1),
			UnitPrice: decimal.Zero,
			TaxRate:   roughTaxRate,
		})
	}
	return items
}

// ParseEstimateLineItems turns pasted free text (an email, a memo) into
// structured estimate line items.
func (c *Client) ParseEstimateLineItems(ctx context.Context, text string) (models.EstimateLineItems, error) {
	prompt := fmt.Sprintf(`Extract estimate line items from this text:
%q
Answer as JSON array: [{"name", "quantity" (number), "unit_price" (number, JPY)}]. Answer with JSON only.`, text)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
		},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	answer, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	parsed, err := decodeJSON[[]parsedLineItem](answer)
	if err != nil {
		return nil, fmt.Errorf("parse line items: %w", err)
	}
	return toLineItems(*parsed), nil
}

// CreateDraftEstimate drafts a whole estimate from a request description.
// Missing fields get pragmatic defaults so the result is always saveable.
func (c *Client) CreateDraftEstimate(ctx context.Context, request string) (*models.NewEstimate, error) {
	prompt := fmt.Sprintf(`A customer requested a print quote: %q.
Draft an estimate as JSON: {"customer_name", "title", "items": [{"name", "quantity" (number), "unit_price" (number, JPY)}], "notes"}.
Answer with JSON only.`, request)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
		},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	answer, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	draft, err := decodeJSON[draftEstimate](answer)
	if err != nil {
		// Fall back to rough extraction over the raw model text so the
		// operator still gets an editable draft with line items.
		return &models.NewEstimate{
			CustomerName: "Unknown",
			Title:        "Draft estimate",
			Status:       models.EstimateStatusDraft,
			Items:        roughExtractLineItems(answer),
			Notes:        request,
		}, nil
	}
	if draft.CustomerName == "" {
		draft.CustomerName = "Unknown"
	}
	if draft.Title == "" {
		draft.Title = "Draft estimate"
	}
	return &models.NewEstimate{
		CustomerName: draft.CustomerName,
		Title:        draft.Title,
		Status:       models.EstimateStatusDraft,
		Items:        toLineItems(draft.Items),
		Notes:        draft.Notes,
	}, nil
}
