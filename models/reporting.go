package models

import (
	"context"
	"time"

	"github.com/daiwaprint/erp_backend/config"
	"github.com/shopspring/decimal"
)

// PeriodFigures aggregates the headline numbers for one closing period.
type PeriodFigures struct {
	JobCount int64           `json:"job_count"`
	Sales    decimal.Decimal `json:"sales"`
	Margin   decimal.Decimal `json:"margin"`
	Expenses decimal.Decimal `json:"expenses"`
}

// CollectPeriodFigures sums job revenue, contribution margin and journal
// debits over a date range. Jobs count by creation date, journal lines by
// entry date.
func CollectPeriodFigures(ctx context.Context, from, to time.Time) (*PeriodFigures, error) {
	db := config.GetDB()

	var jobs []*Job
	if err := db.WithContext(ctx).Where("created_at BETWEEN ? AND ?", from, to).Find(&jobs).Error; err != nil {
		return nil, err
	}
	figures := &PeriodFigures{
		JobCount: int64(len(jobs)),
		Sales:    decimal.Zero,
		Margin:   decimal.Zero,
		Expenses: decimal.Zero,
	}
	for _, job := range jobs {
		figures.Sales = figures.Sales.Add(job.Price)
		figures.Margin = figures.Margin.Add(job.Price.Sub(job.VariableCost))
	}

	var entries []*JournalEntry
	if err := db.WithContext(ctx).Preload("Lines").
		Where("entry_date BETWEEN ? AND ?", from, to).Find(&entries).Error; err != nil {
		return nil, err
	}
	for _, entry := range entries {
		for _, line := range entry.Lines {
			figures.Expenses = figures.Expenses.Add(line.Debit)
		}
	}
	return figures, nil
}
