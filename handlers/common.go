package handlers

import (
	"errors"
	"net/http"

	"github.com/daiwaprint/erp_backend/ai"
	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/daiwaprint/erp_backend/workflow"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps domain errors onto HTTP statuses. Everything not
// recognized is a 500 with the detail kept in the log, not the response.
func respondError(c *gin.Context, module string, funcName string, err error) {
	switch {
	case errors.Is(err, utils.ErrorRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, ai.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ai.ErrUnavailable.Error()})
	case utils.IsUnavailableError(err):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "A network error occurred. Please check the connection and try again.",
		})
	case errors.Is(err, workflow.ErrApplicationFinished),
		errors.Is(err, workflow.ErrItemNotReviewable),
		errors.Is(err, workflow.ErrJobNotInvoicable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrRouteMisconfigured),
		errors.Is(err, workflow.ErrReasonRequired),
		errors.Is(err, workflow.ErrNoJobsSelected),
		errors.Is(err, models.ErrInvalidTaxRate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, workflow.ErrNotCurrentApprover):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(validationErrs)})
			return
		}
		logger := config.GetLogger()
		config.LogError(logger, module, funcName, c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func bindJSON(c *gin.Context, module string, funcName string, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(validationErrs)})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

// aiClient builds the Gemini client or answers 503 directly.
func aiClient(c *gin.Context) (*ai.Client, bool) {
	client, err := ai.NewClient()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return nil, false
	}
	return client, true
}
