package workflow

import (
	"bytes"
	"context"
	"fmt"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/xuri/excelize/v2"
)

// ExportJobLedger writes every job to an XLSX ledger and returns the
// file bytes for download.
func ExportJobLedger(ctx context.Context) (*bytes.Buffer, error) {
	jobs, err := models.GetJobs(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Jobs"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Job No", "Client", "Title", "Status", "Due Date", "Quantity",
		"Paper", "Finishing", "Price", "Variable Cost", "Invoice Status",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		f.SetCellValue(sheet, cell, header)
	}

	for row, job := range jobs {
		dueDate := ""
		if job.DueDate != nil {
			dueDate = job.DueDate.Format("2006-01-02")
		}
		values := []interface{}{
			job.JobNumber, job.ClientName, job.Title, string(job.Status), dueDate,
			job.Quantity, job.PaperType, job.Finishing,
			job.Price.InexactFloat64(), job.VariableCost.InexactFloat64(),
			string(job.InvoiceStatus),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			f.SetCellValue(sheet, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write job ledger: %w", err)
	}
	return buf, nil
}
