package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/gin-gonic/gin"
)

func ListCustomers(c *gin.Context) {
	customers, err := models.GetCustomers(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListCustomers", err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func GetCustomer(c *gin.Context) {
	customer, err := models.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "GetCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func CreateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if !bindJSON(c, "handlers", "CreateCustomer", &input) {
		return
	}
	customer, err := models.CreateCustomer(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateCustomer", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func UpdateCustomer(c *gin.Context) {
	var input models.NewCustomer
	if !bindJSON(c, "handlers", "UpdateCustomer", &input) {
		return
	}
	customer, err := models.UpdateCustomer(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers", "UpdateCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func DeleteCustomer(c *gin.Context) {
	customer, err := models.DeleteCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DeleteCustomer", err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// EnrichCustomer runs the AI lookup and merges verified fields into the
// record.
func EnrichCustomer(c *gin.Context) {
	ctx := c.Request.Context()
	customer, err := models.GetCustomer(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "EnrichCustomer", err)
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	enrichment, sources, err := client.EnrichCustomerData(ctx, customer)
	if err != nil {
		respondError(c, "handlers", "EnrichCustomer", err)
		return
	}
	updated, err := models.ApplyCustomerEnrichment(ctx, customer.ID, enrichment)
	if err != nil {
		respondError(c, "handlers", "EnrichCustomer", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": updated, "sources": sources})
}
