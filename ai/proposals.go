package ai

import (
	"context"
	"fmt"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/models"
)

// LeadProposalPackage bundles everything sales needs to follow up on a
// lead: company research, a proposal outline and a ready-to-send email.
// RawText carries the model output whenever JSON parsing fails, so the
// package is never empty-handed.
type LeadProposalPackage struct {
	CompanyResearch string   `json:"company_research"`
	ProposalOutline string   `json:"proposal_outline"`
	EmailDraft      string   `json:"email_draft"`
	Sources         []Source `json:"sources"`
	RawText         string   `json:"raw_text,omitempty"`
	ParseFailed     bool     `json:"parse_failed"`
}

// CreateLeadProposalPackage researches the lead's company and drafts a
// proposal plus outreach email in one grounded call.
func (c *Client) CreateLeadProposalPackage(ctx context.Context, lead *models.Lead) (*LeadProposalPackage, error) {
	prompt := fmt.Sprintf(`A company named %q sent this inquiry to our commercial printing shop: %q.
Contact person: %s.
Research the company and answer as JSON:
{"company_research": what the company does and their likely print needs,
 "proposal_outline": a proposal outline tailored to them,
 "email_draft": a polite reply email ready to send}.
Answer with JSON only.`, lead.CompanyName, lead.Message, lead.ContactPerson)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if !config.WebGroundingDisabled() {
		req.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, err
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	pkg, err := decodeJSON[LeadProposalPackage](text)
	if err != nil {
		pkg = &LeadProposalPackage{RawText: text, ParseFailed: true}
	}
	pkg.Sources = responseSources(resp)
	return pkg, nil
}

// GenerateProposalSection writes one named section of a customer
// proposal. Job and estimate context are optional.
func (c *Client) GenerateProposalSection(ctx context.Context, sectionTitle string, customer *models.Customer, job *models.Job, estimate *models.Estimate) (string, error) {
	jobContext := "none"
	if job != nil {
		jobContext = fmt.Sprintf("title: %s, quantity: %d, details: %s", job.Title, job.Quantity, job.Details)
	}
	estimateContext := "none"
	if estimate != nil {
		estimateContext = fmt.Sprintf("title: %s, grand total: %s JPY", estimate.Title, estimate.GrandTotal.StringFixed(0))
	}

	prompt := fmt.Sprintf(`You are an experienced sales consultant. Write the %q section of a proposal document for this customer of a commercial printing company.

Customer: %s (industry: %s)
Related job: %s
Related estimate: %s

Write only the body of the section, no heading. Professional and persuasive.`,
		sectionTitle, customer.CompanyName, customer.Industry, jobContext, estimateContext)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// DraftLeadReplyEmail writes a reply to an inbound inquiry.
func (c *Client) DraftLeadReplyEmail(ctx context.Context, lead *models.Lead) (string, error) {
	prompt := fmt.Sprintf(`Write a polite, professional reply email from a commercial printing company to this inquiry.
Company: %s, contact: %s, message: %q.
Thank them, answer what can be answered, and propose a next step. Plain text only.`,
		lead.CompanyName, lead.ContactPerson, lead.Message)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// DraftSalesEmail writes an outreach email to an existing customer about
// a specific topic.
func (c *Client) DraftSalesEmail(ctx context.Context, customer *models.Customer, topic string) (string, error) {
	prompt := fmt.Sprintf(`Write a sales email from a commercial printing company to %s (contact: %s, industry: %s) about: %s.
Keep it short and concrete. Plain text only.`,
		customer.CompanyName, customer.ContactPerson, customer.Industry, topic)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}
