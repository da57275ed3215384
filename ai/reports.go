package ai

import (
	"context"
	"fmt"

	"github.com/daiwaprint/erp_backend/models"
)

// SuggestDashboardAction reads a snapshot of current business figures
// and proposes the single most useful next action.
func (c *Client) SuggestDashboardAction(ctx context.Context, snapshot string) (string, error) {
	prompt := fmt.Sprintf(`You advise the manager of a commercial printing company.
Current figures:
%s
Name the single most important action to take today and why, in three sentences or fewer.`, snapshot)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// SummarizeDailyReport condenses a day's activity log into a short
// management summary.
func (c *Client) SummarizeDailyReport(ctx context.Context, activity string) (string, error) {
	prompt := fmt.Sprintf(`Summarize today's activity at a commercial printing company for the daily report.
Activity log:
%s
Write three short paragraphs: production, sales, issues needing attention.`, activity)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

func describePeriod(figures *models.PeriodFigures) string {
	return fmt.Sprintf("- jobs: %d\n- sales: %s JPY\n- contribution margin: %s JPY\n- expenses: %s JPY",
		figures.JobCount, figures.Sales.StringFixed(0), figures.Margin.StringFixed(0), figures.Expenses.StringFixed(0))
}

// GenerateClosingSummary compares two closing periods and writes an
// analyst-style summary: KPI movement, notable factors and advice.
func (c *Client) GenerateClosingSummary(ctx context.Context, periodType string, current, previous *models.PeriodFigures) (string, error) {
	prompt := fmt.Sprintf(`You are a skilled accounting analyst for a commercial printing company.
Write a %s closing summary from these figures:
- compare the key KPIs (sales, margin) against the previous period
- call out notable movements and their likely drivers
- close with brief advice for management

### Current period
%s

### Previous period
%s`, periodType, describePeriod(current), describePeriod(previous))

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}

// SummarizeWeeklyReport rolls daily summaries up into a weekly report.
func (c *Client) SummarizeWeeklyReport(ctx context.Context, dailySummaries string) (string, error) {
	prompt := fmt.Sprintf(`Combine these daily summaries into a weekly management report with
sections for production, sales, finance and next week's focus:
%s`, dailySummaries)

	req := &generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", err
	}
	return responseText(resp)
}
