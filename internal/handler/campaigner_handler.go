package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/campaign"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/directory"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/matching"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/negotiation"
)

type CampaignerHandler struct {
	negotiations *negotiation.Service
	campaigns    *campaign.Service
	views        *matching.Service
	directory    *directory.Service
	log          *zap.Logger
}

func NewCampaignerHandler(
	negotiations *negotiation.Service,
	campaigns *campaign.Service,
	views *matching.Service,
	dir *directory.Service,
	log *zap.Logger,
) *CampaignerHandler {
	return &CampaignerHandler{
		negotiations: negotiations,
		campaigns:    campaigns,
		views:        views,
		directory:    dir,
		log:          log,
	}
}

type campaignBody struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description" binding:"required"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Goal        string    `json:"goal" binding:"required"`
	Contact     string    `json:"contact" binding:"required"`
}

func (b campaignBody) input() campaign.Input {
	return campaign.Input{
		Name:        b.Name,
		Description: b.Description,
		StartDate:   b.StartDate,
		EndDate:     b.EndDate,
		Goal:        b.Goal,
		Contact:     b.Contact,
	}
}

// Home handles GET /campaigner/home.
func (h *CampaignerHandler) Home(c *gin.Context) {
	home, err := h.views.CampaignerHome(c.Request.Context(), currentCampaigner(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

// ListCampaigns handles GET /campaigner/campaign.
func (h *CampaignerHandler) ListCampaigns(c *gin.Context) {
	assigned, unassigned, err := h.campaigns.ListBuckets(c.Request.Context(), currentCampaigner(c).ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"assigned_campaigns":   assigned,
		"unassigned_campaigns": unassigned,
	})
}

// CreateCampaign handles POST /campaigner/campaign/view.
func (h *CampaignerHandler) CreateCampaign(c *gin.Context) {
	var req campaignBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more fields are missing"})
		return
	}

	cmp, err := h.campaigns.Create(c.Request.Context(), currentCampaigner(c).ID, req.input())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cmp)
}

// ViewCampaign handles GET /campaigner/campaign/view/:campaign_id.
func (h *CampaignerHandler) ViewCampaign(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}

	cmp, err := h.campaigns.GetOwned(c.Request.Context(), currentCampaigner(c).ID, campaignID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// UpdateCampaign handles PATCH /campaigner/campaign/view/:campaign_id.
func (h *CampaignerHandler) UpdateCampaign(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}

	var req campaignBody
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more fields are missing"})
		return
	}

	if err := h.campaigns.Update(c.Request.Context(), currentCampaigner(c).ID, campaignID, req.input()); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign is updated"})
}

// DeleteCampaign handles DELETE /campaigner/campaign/view/:campaign_id.
func (h *CampaignerHandler) DeleteCampaign(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}

	if err := h.campaigns.Delete(c.Request.Context(), currentCampaigner(c).ID, campaignID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted"})
}

// CreateRequest handles POST /campaigner/request/view/:campaign_id/:volunteer_id.
func (h *CampaignerHandler) CreateRequest(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}
	volunteerID, ok := paramID(c, "volunteer_id")
	if !ok {
		return
	}

	var req struct {
		Requirements string `json:"requirements"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more fields are missing"})
		return
	}

	if err := h.negotiations.Invite(
		c.Request.Context(), currentCampaigner(c).ID, campaignID, volunteerID, req.Requirements,
	); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request created"})
}

// ViewRequest handles GET /campaigner/request/view/:campaign_id/:volunteer_id.
func (h *CampaignerHandler) ViewRequest(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}
	volunteerID, ok := paramID(c, "volunteer_id")
	if !ok {
		return
	}

	detail, err := h.negotiations.ViewAsCampaigner(c.Request.Context(), currentCampaigner(c).ID, campaignID, volunteerID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateRequest handles PATCH /campaigner/request/view/:campaign_id/:volunteer_id.
func (h *CampaignerHandler) UpdateRequest(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}
	volunteerID, ok := paramID(c, "volunteer_id")
	if !ok {
		return
	}

	var req struct {
		Requirements string `json:"requirements" binding:"required"`
		Assigned     bool   `json:"assigned"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more fields are missing"})
		return
	}

	accepted, err := h.negotiations.UpdateAsCampaigner(
		c.Request.Context(), currentCampaigner(c).ID, campaignID, volunteerID, req.Requirements, req.Assigned,
	)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if accepted {
		c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request updated"})
}

// DeleteRequest handles DELETE /campaigner/request/view/:campaign_id/:volunteer_id.
func (h *CampaignerHandler) DeleteRequest(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}
	volunteerID, ok := paramID(c, "volunteer_id")
	if !ok {
		return
	}

	if err := h.negotiations.WithdrawAsCampaigner(
		c.Request.Context(), currentCampaigner(c).ID, campaignID, volunteerID,
	); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request deleted"})
}

// SearchVolunteers handles GET /campaigner/volunteer/:search.
func (h *CampaignerHandler) SearchVolunteers(c *gin.Context) {
	hits, err := h.directory.FindVolunteers(c.Request.Context(), c.Param("search"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"volunteers": hits})
}

// ViewVolunteer handles GET /campaigner/volunteer/view/:volunteer_id.
func (h *CampaignerHandler) ViewVolunteer(c *gin.Context) {
	volunteerID, ok := paramID(c, "volunteer_id")
	if !ok {
		return
	}

	v, err := h.directory.VolunteerProfile(c.Request.Context(), volunteerID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":                v.Name,
		"campaigns_completed": v.CampaignsCompleted,
		"profile_pic":         v.ProfilePic,
		"contact":             v.Contact,
	})
}
