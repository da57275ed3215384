package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/workflow"
	"github.com/gin-gonic/gin"
)

func ListInvoices(c *gin.Context) {
	invoices, err := models.GetInvoices(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListInvoices", err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func GetInvoice(c *gin.Context) {
	invoice, err := models.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "GetInvoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type createInvoiceInput struct {
	CustomerName string   `json:"customer_name" binding:"required"`
	CustomerId   *string  `json:"customer_id"`
	JobIds       []string `json:"job_ids" binding:"required"`
}

func CreateInvoiceFromJobs(c *gin.Context) {
	var input createInvoiceInput
	if !bindJSON(c, "handlers", "CreateInvoiceFromJobs", &input) {
		return
	}
	invoice, err := workflow.CreateInvoiceFromJobs(c.Request.Context(), input.CustomerName, input.CustomerId, input.JobIds)
	if err != nil {
		respondError(c, "handlers", "CreateInvoiceFromJobs", err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func MarkInvoicePaid(c *gin.Context) {
	invoice, err := workflow.MarkInvoicePaid(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "MarkInvoicePaid", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
