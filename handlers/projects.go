package handlers

import (
	"io"
	"net/http"

	"github.com/daiwaprint/erp_backend/ai"
	"github.com/daiwaprint/erp_backend/config"
	"github.com/daiwaprint/erp_backend/models"
	"github.com/daiwaprint/erp_backend/utils"
	"github.com/gin-gonic/gin"
)

func ListProjects(c *gin.Context) {
	projects, err := models.GetProjects(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListProjects", err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func GetProject(c *gin.Context) {
	project, err := models.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "GetProject", err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func CreateProject(c *gin.Context) {
	var input models.NewProject
	if !bindJSON(c, "handlers", "CreateProject", &input) {
		return
	}
	project, err := models.CreateProject(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateProject", err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

func UpdateProject(c *gin.Context) {
	var input models.NewProject
	if !bindJSON(c, "handlers", "UpdateProject", &input) {
		return
	}
	project, err := models.UpdateProject(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers", "UpdateProject", err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func DeleteProject(c *gin.Context) {
	project, err := models.DeleteProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DeleteProject", err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// CreateProjectFromInputs drafts a project from a free-text request plus
// uploaded files and creates it in one step. The files themselves are
// read for analysis only; attaching them stays a separate call.
func CreateProjectFromInputs(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart form is required"})
		return
	}
	inputText := c.PostForm("text")
	var inputs []ai.ProjectInputFile
	for _, fileHeader := range form.File["files"] {
		file, err := fileHeader.Open()
		if err != nil {
			respondError(c, "handlers", "CreateProjectFromInputs", err)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			respondError(c, "handlers", "CreateProjectFromInputs", err)
			return
		}
		inputs = append(inputs, ai.ProjectInputFile{
			Name:     fileHeader.Filename,
			Data:     data,
			MimeType: fileHeader.Header.Get("Content-Type"),
		})
	}
	if inputText == "" && len(inputs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text or files are required"})
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	draft, err := client.CreateProjectFromInputs(ctx, inputText, inputs)
	if err != nil {
		respondError(c, "handlers", "CreateProjectFromInputs", err)
		return
	}

	description := draft.Overview
	if draft.ExtractedDetails != "" {
		description += "\n\n" + draft.ExtractedDetails
	}
	project, err := models.CreateProject(ctx, &models.NewProject{
		Name:         draft.ProjectName,
		CustomerName: draft.CustomerName,
		Description:  description,
	})
	if err != nil {
		respondError(c, "handlers", "CreateProjectFromInputs", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project, "draft": draft})
}

// UploadProjectAttachment stores a file in the project bucket and links
// it to the project.
func UploadProjectAttachment(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "handlers", "UploadProjectAttachment", err)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	objectKey := utils.GenerateUniqueFilename(fileHeader.Filename)
	mimeType, err := utils.UploadFileToGCS(ctx, utils.BucketProjectFiles, objectKey, file)
	if err != nil {
		respondError(c, "handlers", "UploadProjectAttachment", err)
		return
	}

	attachment, err := models.AddProjectAttachment(ctx, c.Param("id"), fileHeader.Filename, objectKey, mimeType)
	if err != nil {
		respondError(c, "handlers", "UploadProjectAttachment", err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

func DeleteProjectAttachment(c *gin.Context) {
	ctx := c.Request.Context()
	attachment, err := models.DeleteProjectAttachment(ctx, c.Param("attachmentId"))
	if err != nil {
		respondError(c, "handlers", "DeleteProjectAttachment", err)
		return
	}
	if err := utils.DeleteFileFromGCS(ctx, utils.BucketProjectFiles, attachment.ObjectKey); err != nil {
		// Row is gone already, a stale blob only leaks storage.
		logger := config.GetLogger()
		config.LogError(logger, "handlers", "DeleteProjectAttachment", attachment.ObjectKey, nil, err)
	}
	c.Status(http.StatusNoContent)
}
