package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/daiwaprint/erp_backend/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{
		httpClient: srv.Client(),
		baseURL:    srv.URL,
		apiKey:     "test-key",
		model:      "test-model",
	}
}

func textResponse(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := generateResponse{
		Candidates: []candidate{{Content: content{Parts: []part{{Text: text}}}}},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestAnalyzeLeadData_SamplesPipeline(t *testing.T) {
	var prompt string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		prompt = req.Contents[0].Parts[0].Text
		textResponse(t, w, "Focus on manufacturing leads from the contact form.")
	})

	leads := []*models.Lead{
		{CompanyName: "Alpha Print Works", Status: models.LeadStatusNew, Source: "web"},
		{CompanyName: "Beta Foods", Status: models.LeadStatusContacted, Source: "referral"},
		{CompanyName: "Gamma Logistics", Status: models.LeadStatusQualified, Source: "web"},
		{CompanyName: "Delta Retail", Status: models.LeadStatusNew, Source: "web"},
		{CompanyName: "Epsilon Media", Status: models.LeadStatusLost, Source: "ads"},
	}

	insight, err := client.AnalyzeLeadData(context.Background(), leads)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if insight != "Focus on manufacturing leads from the contact form." {
		t.Fatalf("unexpected insight: %q", insight)
	}

	// The prompt names the full pipeline size but only carries a sample.
	if !strings.Contains(prompt, "5 leads total") {
		t.Fatalf("prompt missing pipeline size:\n%s", prompt)
	}
	for _, sampled := range []string{"Alpha Print Works", "Beta Foods", "Gamma Logistics"} {
		if !strings.Contains(prompt, sampled) {
			t.Fatalf("prompt missing sampled lead %q:\n%s", sampled, prompt)
		}
	}
	for _, omitted := range []string{"Delta Retail", "Epsilon Media"} {
		if strings.Contains(prompt, omitted) {
			t.Fatalf("prompt should not carry lead %q:\n%s", omitted, prompt)
		}
	}
}
