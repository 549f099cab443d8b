package matching

import (
	"context"

	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/repository"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/negotiation"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/logger"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/metrics"
)

type CampaignStore interface {
	ListActiveByVolunteer(ctx context.Context, volunteerID int64) ([]model.Campaign, error)
	ListActiveAssignedByCampaigner(ctx context.Context, campaignerID int64) ([]model.Campaign, error)
}

type RequestStore interface {
	ListPendingByVolunteer(ctx context.Context, volunteerID int64) ([]repository.VolunteerPendingRow, error)
	ListIncomingByCampaigner(ctx context.Context, campaignerID int64) ([]repository.CampaignerIncomingRow, error)
	Delete(ctx context.Context, id int64) error
}

// Service assembles the per-role home aggregates. Enumerating pending
// requests runs the stale-request reconciliation as a side effect: requests
// superseded by an assignment elsewhere are deleted, not surfaced.
type Service struct {
	campaigns CampaignStore
	requests  RequestStore
	log       *zap.Logger
}

func NewService(campaigns CampaignStore, requests RequestStore, log *zap.Logger) *Service {
	return &Service{campaigns: campaigns, requests: requests, log: log}
}

// CampaignSummary is the home-view line item for an active campaign.
type CampaignSummary struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	CompletionPercent int    `json:"completion_percent"`
	IsFlagged         bool   `json:"is_flagged"`
}

// PendingRequest is a volunteer's still-open request line item.
type PendingRequest struct {
	CampaignID        int64  `json:"id"`
	CampaignerName    string `json:"name"`
	CampaignerUpdated bool   `json:"campaigner_updated"`
}

// IncomingRequest is a campaigner's still-open incoming request line item.
type IncomingRequest struct {
	CampaignID       int64  `json:"id"`
	VolunteerID      int64  `json:"volunteer_id"`
	VolunteerName    string `json:"name"`
	VolunteerUpdated bool   `json:"volunteer_updated"`
}

type VolunteerHome struct {
	Name               string            `json:"name"`
	ProfilePic         string            `json:"profile_pic"`
	CampaignsCompleted int               `json:"campaigns_completed"`
	IsFlagged          bool              `json:"is_flagged"`
	ActiveCampaigns    []CampaignSummary `json:"active_campaigns"`
	NewRequests        []PendingRequest  `json:"new_requests"`
}

type CampaignerHome struct {
	Name            string            `json:"name"`
	ProfilePic      string            `json:"profile_pic"`
	IsFlagged       bool              `json:"is_flagged"`
	ActiveCampaigns []CampaignSummary `json:"active_campaigns"`
	NewRequests     []IncomingRequest `json:"new_requests"`
}

// VolunteerHome builds the volunteer's home aggregate: unfinished campaigns
// assigned to them plus their open requests, reconciled.
func (s *Service) VolunteerHome(ctx context.Context, v *model.Volunteer) (*VolunteerHome, error) {
	active, err := s.campaigns.ListActiveByVolunteer(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	rows, err := s.requests.ListPendingByVolunteer(ctx, v.ID)
	if err != nil {
		return nil, err
	}

	home := &VolunteerHome{
		Name:               v.Name,
		ProfilePic:         v.ProfilePic,
		CampaignsCompleted: v.CampaignsCompleted,
		IsFlagged:          v.IsFlagged,
		ActiveCampaigns:    summarize(active),
		NewRequests:        []PendingRequest{},
	}

	byRequestID := make(map[int64]repository.VolunteerPendingRow, len(rows))
	requests := make([]model.Request, 0, len(rows))
	campaigns := make(map[int64]*model.Campaign, len(rows))
	for i := range rows {
		byRequestID[rows[i].Request.ID] = rows[i]
		requests = append(requests, rows[i].Request)
		campaigns[rows[i].Campaign.ID] = &rows[i].Campaign
	}

	live, stale := negotiation.Reconcile(requests, campaigns)
	s.deleteStale(ctx, stale)

	for _, req := range live {
		row := byRequestID[req.ID]
		home.NewRequests = append(home.NewRequests, PendingRequest{
			CampaignID:        req.CampaignID,
			CampaignerName:    row.CampaignerName,
			CampaignerUpdated: req.CampaignerUpdated,
		})
	}
	return home, nil
}

// CampaignerHome builds the campaigner's home aggregate: their assigned
// unfinished campaigns plus incoming open requests, reconciled.
func (s *Service) CampaignerHome(ctx context.Context, c *model.Campaigner) (*CampaignerHome, error) {
	active, err := s.campaigns.ListActiveAssignedByCampaigner(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	rows, err := s.requests.ListIncomingByCampaigner(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	home := &CampaignerHome{
		Name:            c.Name,
		ProfilePic:      c.ProfilePic,
		IsFlagged:       c.IsFlagged,
		ActiveCampaigns: summarize(active),
		NewRequests:     []IncomingRequest{},
	}

	byRequestID := make(map[int64]repository.CampaignerIncomingRow, len(rows))
	requests := make([]model.Request, 0, len(rows))
	campaigns := make(map[int64]*model.Campaign, len(rows))
	for i := range rows {
		byRequestID[rows[i].Request.ID] = rows[i]
		requests = append(requests, rows[i].Request)
		campaigns[rows[i].Campaign.ID] = &rows[i].Campaign
	}

	live, stale := negotiation.Reconcile(requests, campaigns)
	s.deleteStale(ctx, stale)

	for _, req := range live {
		row := byRequestID[req.ID]
		home.NewRequests = append(home.NewRequests, IncomingRequest{
			CampaignID:       req.CampaignID,
			VolunteerID:      req.VolunteerID,
			VolunteerName:    row.VolunteerName,
			VolunteerUpdated: req.VolunteerUpdated,
		})
	}
	return home, nil
}

// deleteStale removes superseded requests. Failures are logged and swallowed;
// reconciliation is cleanup, never an error surfaced to the reader.
func (s *Service) deleteStale(ctx context.Context, staleIDs []int64) {
	for _, id := range staleIDs {
		if err := s.requests.Delete(ctx, id); err != nil {
			logger.WithTrace(ctx, s.log).Warn("stale request cleanup failed",
				zap.Int64("request_id", id),
				zap.Error(err),
			)
			continue
		}
		metrics.StaleRequestCleanupCount.Inc()
		metrics.IncrementRequestTransition("reconciled")
	}
}

func summarize(campaigns []model.Campaign) []CampaignSummary {
	out := make([]CampaignSummary, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, CampaignSummary{
			ID:                c.ID,
			Name:              c.Name,
			CompletionPercent: c.CompletionPercent,
			IsFlagged:         c.IsFlagged,
		})
	}
	return out
}
