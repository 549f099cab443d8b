package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/campaign"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/directory"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/matching"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/negotiation"
)

type VolunteerHandler struct {
	negotiations *negotiation.Service
	campaigns    *campaign.Service
	views        *matching.Service
	directory    *directory.Service
	log          *zap.Logger
}

func NewVolunteerHandler(
	negotiations *negotiation.Service,
	campaigns *campaign.Service,
	views *matching.Service,
	dir *directory.Service,
	log *zap.Logger,
) *VolunteerHandler {
	return &VolunteerHandler{
		negotiations: negotiations,
		campaigns:    campaigns,
		views:        views,
		directory:    dir,
		log:          log,
	}
}

// Home handles GET /volunteer/home.
func (h *VolunteerHandler) Home(c *gin.Context) {
	home, err := h.views.VolunteerHome(c.Request.Context(), currentVolunteer(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, home)
}

// CreateRequest handles POST /volunteer/request/view/:campaign_id.
func (h *VolunteerHandler) CreateRequest(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
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

	if err := h.negotiations.Apply(c.Request.Context(), currentVolunteer(c).ID, campaignID, req.Requirements); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Request created"})
}

// ViewRequest handles GET /volunteer/request/view/:campaign_id.
func (h *VolunteerHandler) ViewRequest(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}

	detail, err := h.negotiations.ViewAsVolunteer(c.Request.Context(), currentVolunteer(c).ID, campaignID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateRequest handles PATCH /volunteer/request/view/:campaign_id.
func (h *VolunteerHandler) UpdateRequest(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
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

	accepted, err := h.negotiations.UpdateAsVolunteer(
		c.Request.Context(), currentVolunteer(c).ID, campaignID, req.Requirements, req.Assigned,
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

// DeleteRequest handles DELETE /volunteer/request/view/:campaign_id.
func (h *VolunteerHandler) DeleteRequest(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}

	if err := h.negotiations.WithdrawAsVolunteer(c.Request.Context(), currentVolunteer(c).ID, campaignID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Request deleted"})
}

// ViewCampaign handles GET /volunteer/campaign/view/:campaign_id.
func (h *VolunteerHandler) ViewCampaign(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}

	cmp, err := h.campaigns.GetAssigned(c.Request.Context(), currentVolunteer(c).ID, campaignID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cmp)
}

// UpdateProgress handles PATCH /volunteer/campaign/view/:campaign_id.
func (h *VolunteerHandler) UpdateProgress(c *gin.Context) {
	campaignID, ok := paramID(c, "campaign_id")
	if !ok {
		return
	}

	var req struct {
		CompletionPercent *int `json:"completion_percent" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Completion percentage is missing"})
		return
	}

	if err := h.campaigns.SetCompletion(c.Request.Context(), currentVolunteer(c).ID, campaignID, *req.CompletionPercent); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Completion Percentage updated"})
}

// FindCampaigns handles GET /volunteer/find/:search.
func (h *VolunteerHandler) FindCampaigns(c *gin.Context) {
	hits, err := h.directory.FindCampaigns(c.Request.Context(), currentVolunteer(c).ID, c.Param("search"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaigns": hits})
}
