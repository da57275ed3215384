package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/gin-gonic/gin"
)

func ListJobs(c *gin.Context) {
	jobs, err := models.GetJobs(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListJobs", err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func GetJob(c *gin.Context) {
	job, err := models.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "GetJob", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func CreateJob(c *gin.Context) {
	var input models.NewJob
	if !bindJSON(c, "handlers", "CreateJob", &input) {
		return
	}
	job, err := models.CreateJob(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateJob", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func UpdateJob(c *gin.Context) {
	var input models.UpdateJobInput
	if !bindJSON(c, "handlers", "UpdateJob", &input) {
		return
	}
	job, err := models.UpdateJob(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers", "UpdateJob", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func DeleteJob(c *gin.Context) {
	job, err := models.DeleteJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DeleteJob", err)
		return
	}
	c.JSON(http.StatusOK, job)
}

type readyToInvoiceInput struct {
	Ready *bool `json:"ready" binding:"required"`
}

func SetJobReadyToInvoice(c *gin.Context) {
	var input readyToInvoiceInput
	if !bindJSON(c, "handlers", "SetJobReadyToInvoice", &input) {
		return
	}
	if err := models.SetJobReadyToInvoice(c.Request.Context(), c.Param("id"), *input.Ready); err != nil {
		respondError(c, "handlers", "SetJobReadyToInvoice", err)
		return
	}
	c.Status(http.StatusNoContent)
}
