package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/gin-gonic/gin"
)

func ListEstimates(c *gin.Context) {
	estimates, err := models.GetEstimates(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListEstimates", err)
		return
	}
	c.JSON(http.StatusOK, estimates)
}

func GetEstimate(c *gin.Context) {
	estimate, err := models.GetEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "GetEstimate", err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

func CreateEstimate(c *gin.Context) {
	var input models.NewEstimate
	if !bindJSON(c, "handlers", "CreateEstimate", &input) {
		return
	}
	estimate, err := models.CreateEstimate(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateEstimate", err)
		return
	}
	c.JSON(http.StatusCreated, estimate)
}

func UpdateEstimate(c *gin.Context) {
	var input models.UpdateEstimateInput
	if !bindJSON(c, "handlers", "UpdateEstimate", &input) {
		return
	}
	estimate, err := models.UpdateEstimate(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers", "UpdateEstimate", err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

func DeleteEstimate(c *gin.Context) {
	estimate, err := models.DeleteEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DeleteEstimate", err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

// AcceptEstimate flips the estimate to accepted and opens a job for it.
func AcceptEstimate(c *gin.Context) {
	job, err := models.AcceptEstimate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "AcceptEstimate", err)
		return
	}
	c.JSON(http.StatusCreated, job)
}

type parseLineItemsInput struct {
	Text string `json:"text" binding:"required"`
}

func ParseEstimateLineItems(c *gin.Context) {
	var input parseLineItemsInput
	if !bindJSON(c, "handlers", "ParseEstimateLineItems", &input) {
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	items, err := client.ParseEstimateLineItems(c.Request.Context(), input.Text)
	if err != nil {
		respondError(c, "handlers", "ParseEstimateLineItems", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type draftEstimateInput struct {
	Request string `json:"request" binding:"required"`
}

// DraftEstimate asks the model to draft a whole estimate and saves it
// immediately, so the operator always edits a persisted record.
func DraftEstimate(c *gin.Context) {
	var input draftEstimateInput
	if !bindJSON(c, "handlers", "DraftEstimate", &input) {
		return
	}
	client, ok := aiClient(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	draft, err := client.CreateDraftEstimate(ctx, input.Request)
	if err != nil {
		respondError(c, "handlers", "DraftEstimate", err)
		return
	}
	estimate, err := models.CreateEstimate(ctx, draft)
	if err != nil {
		respondError(c, "handlers", "DraftEstimate", err)
		return
	}
	c.JSON(http.StatusCreated, estimate)
}
