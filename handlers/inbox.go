package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/workflow"
	"github.com/gin-gonic/gin"
)

func ListInboxItems(c *gin.Context) {
	items, err := models.GetInboxItems(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListInboxItems", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func GetInboxItem(c *gin.Context) {
	item, err := models.GetInboxItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "GetInboxItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// UploadInboxFile accepts a document upload. Extraction runs in the
// background; the item comes back immediately in processing state.
func UploadInboxFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "handlers", "UploadInboxFile", err)
		return
	}
	defer file.Close()

	item, err := workflow.UploadInboxFile(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		respondError(c, "handlers", "UploadInboxFile", err)
		return
	}
	c.JSON(http.StatusAccepted, item)
}

func ApproveInboxItem(c *gin.Context) {
	var input models.NewJournalEntry
	if !bindJSON(c, "handlers", "ApproveInboxItem", &input) {
		return
	}
	item, err := workflow.ApproveInboxItem(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers", "ApproveInboxItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func RetryInboxItem(c *gin.Context) {
	if err := workflow.RetryInboxItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "handlers", "RetryInboxItem", err)
		return
	}
	item, err := models.GetInboxItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "RetryInboxItem", err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func DeleteInboxItem(c *gin.Context) {
	if err := workflow.DeleteInboxItem(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "handlers", "DeleteInboxItem", err)
		return
	}
	c.Status(http.StatusNoContent)
}
