package ai

import (
	"context"
	"encoding/base64"
	"fmt"
)

// ProjectInputFile is an attachment handed to project creation, carried
// inline with the request.
type ProjectInputFile struct {
	Name     string
	Data     []byte
	MimeType string
}

// FileCategory labels one attached file with its role in the project.
type FileCategory struct {
	FileName string `json:"file_name"`
	Category string `json:"category"`
}

// ProjectCreationDraft is the normalized result of reading a customer
// request plus attachments into a new project.
type ProjectCreationDraft struct {
	ProjectName        string         `json:"project_name"`
	CustomerName       string         `json:"customer_name"`
	Overview           string         `json:"overview"`
	ExtractedDetails   string         `json:"extracted_details"`
	FileCategorization []FileCategory `json:"file_categorization"`
}

var projectCreationSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"project_name":      {Type: "string", Description: "short project title summarizing the request"},
		"customer_name":     {Type: "string"},
		"overview":          {Type: "string"},
		"extracted_details": {Type: "string", Description: "key specs (size, colors, quantity, deadline) as bullet points"},
		"file_categorization": {
			Type: "array",
			Items: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"file_name": {Type: "string"},
					"category":  {Type: "string", Description: "one of Specification/Design/Reference/Other"},
				},
				Required: []string{"file_name", "category"},
			},
		},
	},
	Required: []string{"project_name", "customer_name", "overview"},
}

// CreateProjectFromInputs reads a customer request and its attachments
// and drafts a project: name, customer, overview, extracted specs and a
// category per file.
func (c *Client) CreateProjectFromInputs(ctx context.Context, inputText string, files []ProjectInputFile) (*ProjectCreationDraft, error) {
	parts := []part{}
	if inputText != "" {
		parts = append(parts, part{Text: fmt.Sprintf("Customer request:\n%s", inputText)})
	}
	for _, file := range files {
		parts = append(parts, part{Text: "Attachment: " + file.Name})
		parts = append(parts, part{InlineData: &inlineData{
			MimeType: file.MimeType,
			Data:     base64.StdEncoding.EncodeToString(file.Data),
		}})
	}
	parts = append(parts, part{Text: `You are a veteran project manager at a commercial printing company.
Analyze the request and attachments and draft a new project: a concise project name, the customer name, an overview, the key specs as bullet points, and a category for each attached file. Answer with JSON only.`})

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: parts}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   projectCreationSchema,
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
	draft, err := decodeJSON[ProjectCreationDraft](text)
	if err != nil {
		return nil, fmt.Errorf("parse project draft: %w", err)
	}
	return draft, nil
}
