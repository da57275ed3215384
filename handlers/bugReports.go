package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/gin-gonic/gin"
)

func ListBugReports(c *gin.Context) {
	reports, err := models.GetBugReports(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListBugReports", err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func CreateBugReport(c *gin.Context) {
	var input models.NewBugReport
	if !bindJSON(c, "handlers", "CreateBugReport", &input) {
		return
	}
	report, err := models.CreateBugReport(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateBugReport", err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

type bugStatusInput struct {
	Status models.BugReportStatus `json:"status" binding:"required"`
}

func SetBugReportStatus(c *gin.Context) {
	var input bugStatusInput
	if !bindJSON(c, "handlers", "SetBugReportStatus", &input) {
		return
	}
	report, err := models.SetBugReportStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondError(c, "handlers", "SetBugReportStatus", err)
		return
	}
	c.JSON(http.StatusOK, report)
}
