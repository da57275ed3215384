package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/daiwaprint/erp_backend/models"
)

// InvoiceExtraction is what the document extractor pulls out of an
// uploaded receipt or vendor invoice.
type InvoiceExtraction struct {
	VendorName    string                  `json:"vendor_name"`
	InvoiceDate   string                  `json:"invoice_date"`
	InvoiceNumber string                  `json:"invoice_number"`
	Subtotal      float64                 `json:"subtotal"`
	TaxAmount     float64                 `json:"tax_amount"`
	TotalAmount   float64                 `json:"total_amount"`
	Currency      string                  `json:"currency"`
	LineItems     []InvoiceExtractionLine `json:"line_items"`
}

type InvoiceExtractionLine struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
}

var invoiceExtractionSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"vendor_name":    {Type: "string"},
		"invoice_date":   {Type: "string", Description: "ISO date, YYYY-MM-DD"},
		"invoice_number": {Type: "string"},
		"subtotal":       {Type: "number"},
		"tax_amount":     {Type: "number"},
		"total_amount":   {Type: "number"},
		"currency":       {Type: "string"},
		"line_items": {
			Type: "array",
			Items: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"description": {Type: "string"},
					"quantity":    {Type: "number"},
					"unit_price":  {Type: "number"},
					"amount":      {Type: "number"},
				},
				Required: []string{"description", "amount"},
			},
		},
	},
	Required: []string{"vendor_name", "total_amount"},
}

// ExtractInvoiceDetails reads a document image or PDF and returns the
// structured invoice fields. The file rides along base64-encoded inline.
func (c *Client) ExtractInvoiceDetails(ctx context.Context, fileData []byte, mimeType string) (*InvoiceExtraction, json.RawMessage, error) {
	req := &generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: "Extract the invoice or receipt details from this document."},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(fileData),
				}},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   invoiceExtractionSchema,
		},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, nil, err
	}
	extraction, err := decodeJSON[InvoiceExtraction](text)
	if err != nil {
		return nil, nil, fmt.Errorf("parse invoice extraction: %w", err)
	}
	raw := json.RawMessage(StripCodeFence(text))
	return extraction, raw, nil
}

// JournalSuggestion pairs account codes with amounts for a reviewed
// inbox document.
type JournalSuggestion struct {
	Description string                  `json:"description"`
	EntryDate   string                  `json:"entry_date"`
	Lines       []JournalSuggestionLine `json:"lines"`
}

type JournalSuggestionLine struct {
	AccountCode string  `json:"account_code"`
	AccountName string  `json:"account_name"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
}

// SuggestJournalEntry proposes a balanced journal for an extracted
// invoice given the active chart of accounts.
func (c *Client) SuggestJournalEntry(ctx context.Context, extracted json.RawMessage, accountList string) (*JournalSuggestion, error) {
	prompt := fmt.Sprintf(`Given this extracted invoice data:
%s

And these available accounts (code: name):
%s

Propose a balanced double-entry journal as JSON: {"description", "entry_date" (YYYY-MM-DD), "lines": [{"account_code", "account_name", "debit", "credit"}]}.
Debits must equal credits. Answer with JSON only.`, string(extracted), accountList)

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
	suggestion, err := decodeJSON[JournalSuggestion](text)
	if err != nil {
		return nil, fmt.Errorf("parse journal suggestion: %w", err)
	}
	return suggestion, nil
}

// ChatMessage is one turn of an assistant conversation.
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// ProcessApplicationChat runs one turn of the application intake
// assistant. The model either asks a follow-up question or, once it has
// everything, answers with a JSON object describing the application.
func (c *Client) ProcessApplicationChat(ctx context.Context, history []ChatMessage, users []*models.User, routes []*models.ApprovalRoute) (string, error) {
	var conversation strings.Builder
	for _, message := range history {
		conversation.WriteString(message.Role + ": " + message.Content + "\n")
	}
	var userList strings.Builder
	for _, user := range users {
		userList.WriteString(user.ID + ": " + user.Name + "\n")
	}
	var routeList strings.Builder
	for _, route := range routes {
		routeList.WriteString(route.ID + ": " + route.Name + "\n")
	}

	prompt := fmt.Sprintf(`You are an internal application intake assistant. Interview the user about the request they want to submit for approval.
When information is missing, ask one follow-up question in plain text.
When you have everything, answer with only this JSON and nothing else:
{"title", "details", "approval_route_id": one of the available route ids}

--- Conversation so far ---
%s
--- Available approval routes (id: name) ---
%s
--- Known users (id: name) ---
%s
Produce the next response (a question or the final JSON).`,
		conversation.String(), routeList.String(), userList.String())

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ApprovalDocumentSummary is the extracted gist of a document attached to
// an approval application.
type ApprovalDocumentSummary struct {
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Summary  string  `json:"summary"`
}

// ParseApprovalDocument prefills an application form from an uploaded
// document.
func (c *Client) ParseApprovalDocument(ctx context.Context, fileData []byte, mimeType string) (*ApprovalDocumentSummary, error) {
	req := &generateRequest{
		Contents: []content{{
			Role: "user",
			Parts: []part{
				{Text: `Read this document and extract JSON: {"title": short title for an approval request, "category": one of Expense/Purchase/Leave/Contract/Other, "amount": total amount if any else 0, "summary": two-sentence summary}. Answer with JSON only.`},
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(fileData),
				}},
			},
		}},
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
	summary, err := decodeJSON[ApprovalDocumentSummary](text)
	if err != nil {
		return nil, fmt.Errorf("parse approval document: %w", err)
	}
	return summary, nil
}
