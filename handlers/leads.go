package handlers

import (
	"net/http"

	"github.com/daiwaprint/erp_backend/models"
	"github.com/gin-gonic/gin"
)

func ListLeads(c *gin.Context) {
	leads, err := models.GetLeads(c.Request.Context())
	if err != nil {
		respondError(c, "handlers", "ListLeads", err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func GetLead(c *gin.Context) {
	lead, err := models.GetLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "GetLead", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func CreateLead(c *gin.Context) {
	var input models.NewLead
	if !bindJSON(c, "handlers", "CreateLead", &input) {
		return
	}
	lead, err := models.CreateLead(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "handlers", "CreateLead", err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func UpdateLead(c *gin.Context) {
	var input models.UpdateLeadInput
	if !bindJSON(c, "handlers", "UpdateLead", &input) {
		return
	}
	lead, err := models.UpdateLead(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		respondError(c, "handlers", "UpdateLead", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func DeleteLead(c *gin.Context) {
	lead, err := models.DeleteLead(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DeleteLead", err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func ConvertLead(c *gin.Context) {
	customer, err := models.ConvertLeadToCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "ConvertLead", err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// InvestigateLead runs the grounded background check and stores the
// briefing on the lead.
func InvestigateLead(c *gin.Context) {
	ctx := c.Request.Context()
	lead, err := models.GetLead(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "InvestigateLead", err)
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	briefing, sources, err := client.InvestigateLeadCompany(ctx, lead)
	if err != nil {
		respondError(c, "handlers", "InvestigateLead", err)
		return
	}
	lead, err = models.UpdateLead(ctx, lead.ID, &models.UpdateLeadInput{AiAnalysis: &briefing})
	if err != nil {
		respondError(c, "handlers", "InvestigateLead", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lead": lead, "sources": sources})
}

// LeadProposalPackage drafts research, a proposal outline and a reply
// email for the lead in one call.
func LeadProposalPackage(c *gin.Context) {
	ctx := c.Request.Context()
	lead, err := models.GetLead(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "LeadProposalPackage", err)
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	pkg, err := client.CreateLeadProposalPackage(ctx, lead)
	if err != nil {
		respondError(c, "handlers", "LeadProposalPackage", err)
		return
	}
	c.JSON(http.StatusOK, pkg)
}

// AnalyzeLeads turns the current pipeline into one sales insight and
// records it in the analysis history.
func AnalyzeLeads(c *gin.Context) {
	ctx := c.Request.Context()
	leads, err := models.GetLeads(ctx)
	if err != nil {
		respondError(c, "handlers", "AnalyzeLeads", err)
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	insight, err := client.AnalyzeLeadData(ctx, leads)
	if err != nil {
		respondError(c, "handlers", "AnalyzeLeads", err)
		return
	}
	models.RecordAnalysis(ctx, "leads", "lead pipeline", insight, "")
	c.JSON(http.StatusOK, gin.H{"insight": insight})
}

func DraftLeadReply(c *gin.Context) {
	ctx := c.Request.Context()
	lead, err := models.GetLead(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "handlers", "DraftLeadReply", err)
		return
	}

	client, ok := aiClient(c)
	if !ok {
		return
	}
	email, err := client.DraftLeadReplyEmail(ctx, lead)
	if err != nil {
		respondError(c, "handlers", "DraftLeadReply", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": email})
}
