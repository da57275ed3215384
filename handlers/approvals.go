package handlers

import (
	"io"
	"net/http"

	"github.com/daiwaprint/erp_backend/ai"
	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/workflow"
	"github.com/gin-gonic/gin"
)

func ListApprovalRoutes(c *gin.Context) {
	routes, err := models.GetApprovalRoutes(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListApprovalRoutes", err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

func CreateApprovalRoute(c *gin.Context) {
	var input models.NewApprovalRoute
	if !bindJSON(c, "handlers", "CreateApprovalRoute", &input) {
		return
	}
	route, err := models.CreateApprovalRoute(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateApprovalRoute", err)
		return
	}
	c.JSON(http.StatusCreated, route)
}

func UpdateApprovalRoute(c *gin.Context) {
	var input models.NewApprovalRoute
	if !bindJSON(c, "handlers", "UpdateApprovalRoute", &input) {
		return
	}
	route, err := models.UpdateApprovalRoute(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers", "UpdateApprovalRoute", err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func DeleteApprovalRoute(c *gin.Context) {
	route, err := models.DeleteApprovalRoute(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DeleteApprovalRoute", err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func ListApplications(c *gin.Context) {
	applications, err := models.GetApplicationsForUser(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListApplications", err)
		return
	}
	c.JSON(http.StatusOK, applications)
}

func GetApplication(c *gin.Context) {
	application, err := models.GetApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "GetApplication", err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func SubmitApplication(c *gin.Context) {
	var input models.NewApplication
	if !bindJSON(c, "handlers", "SubmitApplication", &input) {
		return
	}
	application, err := workflow.SubmitApplication(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "SubmitApplication", err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func ApproveApplication(c *gin.Context) {
	application, err := workflow.ApproveApplication(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "ApproveApplication", err)
		return
	}
	c.JSON(http.StatusOK, application)
}

type rejectInput struct {
	Reason string `json:"reason" binding:"required"`
}

func RejectApplication(c *gin.Context) {
	var input rejectInput
	if !bindJSON(c, "handlers", "RejectApplication", &input) {
		return
	}
	application, err := workflow.RejectApplication(c.Request.Context(), c.Param("id"), input.Reason)
	if err != nil {
		respondError(c, "handlers", "RejectApplication", err)
		return
	}
	c.JSON(http.StatusOK, application)
}

// ParseApprovalDocument prefills an application form from an uploaded
// document.
func ParseApprovalDocument(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "handlers", "ParseApprovalDocument", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(c, "handlers", "ParseApprovalDocument", err)
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	mimeType := fileHeader.Header.Get("Content-Type")
	summary, err := client.ParseApprovalDocument(c.Request.Context(), data, mimeType)
	if err != nil {
		respondError(c, "handlers", "ParseApprovalDocument", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

type applicationChatInput struct {
	History []ai.ChatMessage `json:"history" binding:"required,min=1,dive"`
}

// ApplicationChat drives the intake assistant: the model asks follow-up
// questions until it can emit a filled application as JSON.
func ApplicationChat(c *gin.Context) {
	var input applicationChatInput
	if !bindJSON(c, "handlers", "ApplicationChat", &input) {
		return
	}
	ctx := c.Request.Context()
	users, err := models.GetUsers(ctx)
	if err != nil {
		respondError(c, "handlers", "ApplicationChat", err)
		return
	}
	routes, err := models.GetApprovalRoutes(ctx)
	if err != nil {
		respondError(c, "handlers", "ApplicationChat", err)
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	reply, err := client.ProcessApplicationChat(ctx, input.History, users, routes)
	if err != nil {
		respondError(c, "handlers", "ApplicationChat", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
