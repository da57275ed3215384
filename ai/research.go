package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/models"
)

// CompanyAnalysis is the normalized result of a web-grounded company
// lookup. When the model's JSON cannot be parsed the Summary carries the
// raw text so the operator still sees something useful.
type CompanyAnalysis struct {
	CompanyName   string   `json:"company_name"`
	Summary       string   `json:"summary"`
	Industry      string   `json:"industry"`
	Strengths     []string `json:"strengths"`
	PrintingNeeds []string `json:"printing_needs"`
	Approach      string   `json:"approach"`
	Sources       []Source `json:"sources"`
	ParseFailed   bool     `json:"parse_failed"`
}

func companyAnalysisCacheKey(companyName string) string {
	return "ai:company_analysis:" + companyName
}

// AnalyzeCompany researches a company with web grounding and normalizes
// the answer. Results are cached for a day keyed on the company name;
// refresh drops the cached entry and asks again.
func (c *Client) AnalyzeCompany(ctx context.Context, companyName string, refresh bool) (*CompanyAnalysis, error) {
	key := companyAnalysisCacheKey(companyName)
	if refresh {
		if err := config.RemoveRedisKey(key); err != nil {
			config.LogError(config.GetLogger(), "ai", "AnalyzeCompany", "drop cached analysis", companyName, err)
		}
	} else {
		var cached CompanyAnalysis
		if found, err := config.GetRedisObject(key, &cached); err == nil && found {
			return &cached, nil
		}
	}

	prompt := fmt.Sprintf(`Research the company %q and answer as JSON with these keys:
company_name, summary, industry, strengths (array), printing_needs (array of likely commercial printing needs), approach (how a print company should pitch them).
Answer with JSON only.`, companyName)

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

	analysis, err := decodeJSON[CompanyAnalysis](text)
	if err != nil {
		// Keep the raw answer rather than failing the whole lookup.
		analysis = &CompanyAnalysis{
			CompanyName: companyName,
			Summary:     text,
			ParseFailed: true,
		}
	}
	analysis.CompanyName = companyName
	analysis.Sources = responseSources(resp)

	if err := config.SetRedisObject(key, analysis, 24*time.Hour); err != nil {
		config.LogError(config.GetLogger(), "ai", "AnalyzeCompany", "cache analysis", companyName, err)
	}
	return analysis, nil
}

// InvestigateLeadCompany runs a grounded background check on an inbound
// lead and returns prose the sales team can read as-is.
func (c *Client) InvestigateLeadCompany(ctx context.Context, lead *models.Lead) (string, []Source, error) {
	prompt := fmt.Sprintf(`A company named %q submitted an inquiry through our print shop website.
Contact: %s <%s>. Message: %q.
Investigate the company online and summarize: who they are, their size and industry, how credible the inquiry looks, and what print products they most likely need. Write a concise briefing.`,
		lead.CompanyName, lead.ContactPerson, lead.Email, lead.Message)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if !config.WebGroundingDisabled() {
		req.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", nil, err
	}
	text, err := responseText(resp)
	if err != nil {
		return "", nil, err
	}
	return text, responseSources(resp), nil
}

// AnalyzeLeadData reads the current lead pipeline and returns one
// concise sales insight. Only a small sample rides along in the prompt.
func (c *Client) AnalyzeLeadData(ctx context.Context, leads []*models.Lead) (string, error) {
	sample := leads
	if len(sample) > 3 {
		sample = sample[:3]
	}
	type leadSample struct {
		Company string `json:"company"`
		Status  string `json:"status"`
		Source  string `json:"source"`
		Message string `json:"message"`
	}
	samples := make([]leadSample, 0, len(sample))
	for _, lead := range sample {
		samples = append(samples, leadSample{
			Company: lead.CompanyName,
			Status:  string(lead.Status),
			Source:  lead.Source,
			Message: lead.Message,
		})
	}
	sampleJSON, err := json.Marshal(samples)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`Analyze this lead pipeline (%d leads total) for a commercial printing company and produce one concise sales insight or recommendation.
Point out trends among promising leads or a segment worth approaching.

Sample data:
%s`, len(leads), string(sampleJSON))

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// EnrichCustomerData looks up public facts about a customer and maps them
// onto the pointer-field enrichment shape, so only fields the model
// actually found get written back.
func (c *Client) EnrichCustomerData(ctx context.Context, customer *models.Customer) (*models.CustomerEnrichment, []Source, error) {
	prompt := fmt.Sprintf(`Look up the company %q (website: %s) and answer as JSON with any of these keys you can verify:
industry, employee_count (number), capital_amount (number, JPY), website_url, representative, address_1, postal_code, notes.
Omit keys you cannot verify. Answer with JSON only.`, customer.CompanyName, customer.WebsiteUrl)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if !config.WebGroundingDisabled() {
		req.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	text, err := responseText(resp)
	if err != nil {
		return nil, nil, err
	}
	enrichment, err := decodeJSON[models.CustomerEnrichment](text)
	if err != nil {
		return nil, nil, fmt.Errorf("parse enrichment: %w", err)
	}
	return enrichment, responseSources(resp), nil
}

// GenerateMarketResearchReport answers a free-form market question with
// web grounding.
func (c *Client) GenerateMarketResearchReport(ctx context.Context, query string) (string, []Source, error) {
	prompt := fmt.Sprintf(`You are a market analyst for a commercial printing company.
Research the following question and write a structured report with headings: %s`, query)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	if !config.WebGroundingDisabled() {
		req.Tools = []tool{{GoogleSearch: &struct{}{}}}
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", nil, err
	}
	text, err := responseText(resp)
	if err != nil {
		return "", nil, err
	}
	return text, responseSources(resp), nil
}
