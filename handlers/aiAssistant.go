package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/gin-gonic/gin"
)

type suggestJobInput struct {
	Description string `json:"description" binding:"required"`
}

func SuggestJobParameters(c *gin.Context) {
	var input suggestJobInput
	if !bindJSON(c, "handlers", "SuggestJobParameters", &input) {
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	suggestion, err := client.SuggestJobParameters(c.Request.Context(), input.Description)
	if err != nil {
		respondError(c, "handlers", "SuggestJobParameters", err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

type analyzeCompanyInput struct {
	CompanyName string `json:"company_name" binding:"required"`
	Refresh     bool   `json:"refresh"`
}

func AnalyzeCompany(c *gin.Context) {
	var input analyzeCompanyInput
	if !bindJSON(c, "handlers", "AnalyzeCompany", &input) {
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	analysis, err := client.AnalyzeCompany(ctx, input.CompanyName, input.Refresh)
	if err != nil {
		respondError(c, "handlers", "AnalyzeCompany", err)
		return
	}

	sources, _ := utils.MarshalToJSON(analysis.Sources)
	models.RecordAnalysis(ctx, "company", input.CompanyName, analysis.Summary, sources)
	c.JSON(http.StatusOK, analysis)
}

type marketResearchInput struct {
	Query string `json:"query" binding:"required"`
}

func MarketResearch(c *gin.Context) {
	var input marketResearchInput
	if !bindJSON(c, "handlers", "MarketResearch", &input) {
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	report, sources, err := client.GenerateMarketResearchReport(ctx, input.Query)
	if err != nil {
		respondError(c, "handlers", "MarketResearch", err)
		return
	}

	sourcesJSON, _ := utils.MarshalToJSON(sources)
	models.RecordAnalysis(ctx, "market_research", input.Query, report, sourcesJSON)
	c.JSON(http.StatusOK, gin.H{"report": report, "sources": sources})
}

func ListAnalysisHistory(c *gin.Context) {
	records, err := models.GetAnalysisHistory(c.Request.Context(), c.Query("kind"))
	if err != nil {
		respondError(c, "handlers", "ListAnalysisHistory", err)
		return
	}
	c.JSON(http.StatusOK, records)
}

type suggestJournalInput struct {
	InboxItemId string `json:"inbox_item_id" binding:"required"`
}

// SuggestJournal proposes a balanced journal for a reviewed inbox item
// against the active chart of accounts.
func SuggestJournal(c *gin.Context) {
	var input suggestJournalInput
	if !bindJSON(c, "handlers", "SuggestJournal", &input) {
		return
	}
	ctx := c.Request.Context()
	item, err := models.GetInboxItem(ctx, input.InboxItemId)
	if err != nil {
		respondError(c, "handlers", "SuggestJournal", err)
		return
	}
	accounts, err := models.GetAccountItems(ctx)
	if err != nil {
		respondError(c, "handlers", "SuggestJournal", err)
		return
	}
	var accountList strings.Builder
	for _, account := range accounts {
		if account.IsActive != nil && !*account.IsActive {
			continue
		}
		accountList.WriteString(account.Code + ": " + account.Name + "\n")
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	suggestion, err := client.SuggestJournalEntry(ctx, item.ExtractedData, accountList.String())
	if err != nil {
		respondError(c, "handlers", "SuggestJournal", err)
		return
	}
	c.JSON(http.StatusOK, suggestion)
}

type dashboardSuggestionInput struct {
	Snapshot string `json:"snapshot" binding:"required"`
}

func DashboardSuggestion(c *gin.Context) {
	var input dashboardSuggestionInput
	if !bindJSON(c, "handlers", "DashboardSuggestion", &input) {
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	suggestion, err := client.SuggestDashboardAction(c.Request.Context(), input.Snapshot)
	if err != nil {
		respondError(c, "handlers", "DashboardSuggestion", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}

type reportSummaryInput struct {
	Content string `json:"content" binding:"required"`
}

func SummarizeDailyReport(c *gin.Context) {
	var input reportSummaryInput
	if !bindJSON(c, "handlers", "SummarizeDailyReport", &input) {
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	summary, err := client.SummarizeDailyReport(c.Request.Context(), input.Content)
	if err != nil {
		respondError(c, "handlers", "SummarizeDailyReport", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

func SummarizeWeeklyReport(c *gin.Context) {
	var input reportSummaryInput
	if !bindJSON(c, "handlers", "SummarizeWeeklyReport", &input) {
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	summary, err := client.SummarizeWeeklyReport(c.Request.Context(), input.Content)
	if err != nil {
		respondError(c, "handlers", "SummarizeWeeklyReport", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

type proposalSectionInput struct {
	SectionTitle string  `json:"section_title" binding:"required"`
	JobId        *string `json:"job_id"`
	EstimateId   *string `json:"estimate_id"`
}

// ProposalSection writes one section of a proposal for the customer in
// the path, optionally grounded on a job and an estimate.
func ProposalSection(c *gin.Context) {
	var input proposalSectionInput
	if !bindJSON(c, "handlers", "ProposalSection", &input) {
		return
	}
	ctx := c.Request.Context()
	customer, err := models.GetCustomer(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "ProposalSection", err)
		return
	}
	var job *models.Job
	if input.JobId != nil {
		if job, err = models.GetJob(ctx, *input.JobId); err != nil {
			respondError(c, "handlers", "ProposalSection", err)
			return
		}
	}
	var estimate *models.Estimate
	if input.EstimateId != nil {
		if estimate, err = models.GetEstimate(ctx, *input.EstimateId); err != nil {
			respondError(c, "handlers", "ProposalSection", err)
			return
		}
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	section, err := client.GenerateProposalSection(ctx, input.SectionTitle, customer, job, estimate)
	if err != nil {
		respondError(c, "handlers", "ProposalSection", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": section})
}

type closingSummaryInput struct {
	PeriodType   string    `json:"period_type" binding:"required"`
	CurrentFrom  time.Time `json:"current_from" binding:"required"`
	CurrentTo    time.Time `json:"current_to" binding:"required"`
	PreviousFrom time.Time `json:"previous_from" binding:"required"`
	PreviousTo   time.Time `json:"previous_to" binding:"required"`
}

// ClosingSummary aggregates two periods from jobs and journals and asks
// for an analyst-style comparison.
func ClosingSummary(c *gin.Context) {
	var input closingSummaryInput
	if !bindJSON(c, "handlers", "ClosingSummary", &input) {
		return
	}
	ctx := c.Request.Context()
	current, err := models.CollectPeriodFigures(ctx, input.CurrentFrom, input.CurrentTo)
	if err != nil {
		respondError(c, "handlers", "ClosingSummary", err)
		return
	}
	previous, err := models.CollectPeriodFigures(ctx, input.PreviousFrom, input.PreviousTo)
	if err != nil {
		respondError(c, "handlers", "ClosingSummary", err)
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	summary, err := client.GenerateClosingSummary(ctx, input.PeriodType, current, previous)
	if err != nil {
		respondError(c, "handlers", "ClosingSummary", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "current": current, "previous": previous})
}

type salesEmailInput struct {
	Topic string `json:"topic" binding:"required"`
}

func DraftSalesEmail(c *gin.Context) {
	var input salesEmailInput
	if !bindJSON(c, "handlers", "DraftSalesEmail", &input) {
		return
	}
	ctx := c.Request.Context()
	customer, err := models.GetCustomer(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DraftSalesEmail", err)
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	email, err := client.DraftSalesEmail(ctx, customer, input.Topic)
	if err != nil {
		respondError(c, "handlers", "DraftSalesEmail", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email})
}
