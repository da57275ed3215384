package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/gin-gonic/gin"
)

func ListAccountItems(c *gin.Context) {
	items, err := models.GetAccountItems(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListAccountItems", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func SaveAccountItem(c *gin.Context) {
	var input models.NewAccountItem
	if !bindJSON(c, "handlers", "SaveAccountItem", &input) {
		return
	}
	item, err := models.SaveAccountItem(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "SaveAccountItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeactivateAccountItem(c *gin.Context) {
	item, err := models.DeactivateAccountItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DeactivateAccountItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func ListDepartments(c *gin.Context) {
	departments, err := models.GetDepartments(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListDepartments", err)
		return
	}
	c.JSON(http.StatusOK, departments)
}

func CreateDepartment(c *gin.Context) {
	var input models.NewNamedMaster
	if !bindJSON(c, "handlers", "CreateDepartment", &input) {
		return
	}
	department, err := models.CreateNamedMaster(c.Request.Context(), &models.Department{Name: input.Name})
	if err != nil {
		respondError(c, "handlers", "CreateDepartment", err)
		return
	}
	c.JSON(http.StatusCreated, department)
}

func ListTitles(c *gin.Context) {
	titles, err := models.GetTitles(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListTitles", err)
		return
	}
	c.JSON(http.StatusOK, titles)
}

func CreateTitle(c *gin.Context) {
	var input models.NewNamedMaster
	if !bindJSON(c, "handlers", "CreateTitle", &input) {
		return
	}
	title, err := models.CreateNamedMaster(c.Request.Context(), &models.Title{Name: input.Name})
	if err != nil {
		respondError(c, "handlers", "CreateTitle", err)
		return
	}
	c.JSON(http.StatusCreated, title)
}

func ListAllocationDivisions(c *gin.Context) {
	divisions, err := models.GetAllocationDivisions(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListAllocationDivisions", err)
		return
	}
	c.JSON(http.StatusOK, divisions)
}

func CreateAllocationDivision(c *gin.Context) {
	var input models.NewNamedMaster
	if !bindJSON(c, "handlers", "CreateAllocationDivision", &input) {
		return
	}
	division, err := models.CreateNamedMaster(c.Request.Context(), &models.AllocationDivision{Name: input.Name})
	if err != nil {
		respondError(c, "handlers", "CreateAllocationDivision", err)
		return
	}
	c.JSON(http.StatusCreated, division)
}

func ListPaymentRecipients(c *gin.Context) {
	recipients, err := models.GetPaymentRecipients(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListPaymentRecipients", err)
		return
	}
	c.JSON(http.StatusOK, recipients)
}

func CreatePaymentRecipient(c *gin.Context) {
	var input models.PaymentRecipient
	if !bindJSON(c, "handlers", "CreatePaymentRecipient", &input) {
		return
	}
	recipient, err := models.CreateNamedMaster(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreatePaymentRecipient", err)
		return
	}
	c.JSON(http.StatusCreated, recipient)
}

func ListJournalEntries(c *gin.Context) {
	entries, err := models.GetJournalEntries(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListJournalEntries", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
