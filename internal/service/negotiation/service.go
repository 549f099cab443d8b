package negotiation

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/domain"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/repository"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/logger"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/metrics"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/mq"
)

type RequestStore interface {
	Create(ctx context.Context, req *model.Request) error
	FindByPair(ctx context.Context, campaignID, volunteerID int64) (*model.Request, error)
	Update(ctx context.Context, req *model.Request) error
	ClearVolunteerUpdated(ctx context.Context, id int64) error
	ClearCampaignerUpdated(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Accept(ctx context.Context, requestID, campaignID, volunteerID int64) error
}

type CampaignStore interface {
	FindByID(ctx context.Context, id int64) (*model.Campaign, error)
}

type VolunteerStore interface {
	FindByID(ctx context.Context, id int64) (*model.Volunteer, error)
}

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// Party identifies which side of a negotiation is acting.
type Party int

const (
	PartyVolunteer Party = iota
	PartyCampaigner
)

// Service owns the request state machine: proposal, counter-edit, acceptance
// and withdrawal between a volunteer and a campaigner for one campaign.
type Service struct {
	requests   RequestStore
	campaigns  CampaignStore
	volunteers VolunteerStore
	events     EventPublisher
	log        *zap.Logger
}

func NewService(requests RequestStore, campaigns CampaignStore, volunteers VolunteerStore, events EventPublisher, log *zap.Logger) *Service {
	return &Service{
		requests:   requests,
		campaigns:  campaigns,
		volunteers: volunteers,
		events:     events,
		log:        log,
	}
}

// Apply creates a volunteer-initiated request against an unassigned campaign.
// The volunteer's own edit flag starts true: the proposer has implicitly
// reviewed their own terms, the counterparty has not.
func (s *Service) Apply(ctx context.Context, volunteerID, campaignID int64, requirements string) error {
	c, err := s.findCampaign(ctx, campaignID)
	if err != nil {
		return err
	}
	if c.AssignedTo != nil {
		return domain.E(domain.KindAssignedElsewhere, "Campaign assigned to another volunteer")
	}

	req := &model.Request{
		CampaignID:       campaignID,
		VolunteerID:      volunteerID,
		Requirements:     requirements,
		VolunteerUpdated: true,
	}
	return s.create(ctx, req)
}

// Invite creates a campaigner-initiated request pairing one of the caller's
// campaigns with a specific volunteer. Mirror of Apply with the campaigner's
// flag set instead.
func (s *Service) Invite(ctx context.Context, campaignerID, campaignID, volunteerID int64, requirements string) error {
	c, err := s.findOwnedCampaign(ctx, campaignerID, campaignID)
	if err != nil {
		return err
	}
	if c.AssignedTo != nil {
		return domain.E(domain.KindAssignedElsewhere, "Campaign assigned to another volunteer")
	}

	if _, err := s.volunteers.FindByID(ctx, volunteerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.E(domain.KindNotFound, "Volunteer not found")
		}
		return err
	}

	req := &model.Request{
		CampaignID:        campaignID,
		VolunteerID:       volunteerID,
		Requirements:      requirements,
		CampaignerUpdated: true,
	}
	return s.create(ctx, req)
}

func (s *Service) create(ctx context.Context, req *model.Request) error {
	if err := s.requests.Create(ctx, req); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.E(domain.KindConflict, "Request already exists")
		}
		return err
	}
	metrics.IncrementRequestTransition("created")
	s.publish(ctx, mq.KeyRequestCreated, requestEvent{CampaignID: req.CampaignID, VolunteerID: req.VolunteerID})
	return nil
}

// VolunteerDetail is the request detail surfaced to the volunteer.
type VolunteerDetail struct {
	CampaignID        int64  `json:"campaign_id"`
	Name              string `json:"name"`
	Requirements      string `json:"requirements"`
	CampaignerUpdated bool   `json:"campaigner_updated"`
	Contact           string `json:"contact"`
}

// CampaignerDetail is the request detail surfaced to the campaigner.
type CampaignerDetail struct {
	CampaignID       int64  `json:"campaign_id"`
	VolunteerID      int64  `json:"volunteer_id"`
	Name             string `json:"name"`
	Requirements     string `json:"requirements"`
	VolunteerUpdated bool   `json:"volunteer_updated"`
	Contact          string `json:"contact"`
}

// ViewAsVolunteer returns the volunteer-facing detail of their request.
// Reading acknowledges the campaigner's pending edit: the campaigner_updated
// flag is cleared as a side effect, so the signal surfaces exactly once.
func (s *Service) ViewAsVolunteer(ctx context.Context, volunteerID, campaignID int64) (*VolunteerDetail, error) {
	req, c, err := s.guardVolunteer(ctx, volunteerID, campaignID)
	if err != nil {
		return nil, err
	}

	detail := &VolunteerDetail{
		CampaignID:        c.ID,
		Name:              c.Name,
		Requirements:      req.Requirements,
		CampaignerUpdated: req.CampaignerUpdated,
		Contact:           c.Contact,
	}

	if !req.Assigned && req.CampaignerUpdated {
		if err := s.requests.ClearCampaignerUpdated(ctx, req.ID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// ViewAsCampaigner mirrors ViewAsVolunteer; reading clears volunteer_updated.
func (s *Service) ViewAsCampaigner(ctx context.Context, campaignerID, campaignID, volunteerID int64) (*CampaignerDetail, error) {
	req, c, err := s.guardCampaigner(ctx, campaignerID, campaignID, volunteerID)
	if err != nil {
		return nil, err
	}

	v, err := s.volunteers.FindByID(ctx, req.VolunteerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "Volunteer not found")
		}
		return nil, err
	}

	detail := &CampaignerDetail{
		CampaignID:       c.ID,
		VolunteerID:      req.VolunteerID,
		Name:             v.Name,
		Requirements:     req.Requirements,
		VolunteerUpdated: req.VolunteerUpdated,
		Contact:          c.Contact,
	}

	if !req.Assigned && req.VolunteerUpdated {
		if err := s.requests.ClearVolunteerUpdated(ctx, req.ID); err != nil {
			return nil, err
		}
	}
	return detail, nil
}

// UpdateAsVolunteer applies a counter-edit or acceptance by the volunteer.
// Returns whether the request was accepted.
func (s *Service) UpdateAsVolunteer(ctx context.Context, volunteerID, campaignID int64, requirements string, accept bool) (bool, error) {
	req, c, err := s.guardVolunteer(ctx, volunteerID, campaignID)
	if err != nil {
		return false, err
	}
	return s.update(ctx, req, c, PartyVolunteer, requirements, accept)
}

// UpdateAsCampaigner is the campaigner mirror of UpdateAsVolunteer.
func (s *Service) UpdateAsCampaigner(ctx context.Context, campaignerID, campaignID, volunteerID int64, requirements string, accept bool) (bool, error) {
	req, c, err := s.guardCampaigner(ctx, campaignerID, campaignID, volunteerID)
	if err != nil {
		return false, err
	}
	return s.update(ctx, req, c, PartyCampaigner, requirements, accept)
}

// update is the shared edit/accept transition. Acceptance requires that the
// caller's own flag is clear: a party cannot rubber-stamp terms it last
// edited. A counter-edit rewrites requirements and raises only the caller's
// flag; repeated edits by the same party collapse into one pending signal.
func (s *Service) update(ctx context.Context, req *model.Request, c *model.Campaign, party Party, requirements string, accept bool) (bool, error) {
	if req.Assigned {
		return false, domain.E(domain.KindImmutable, "You cannot change an accepted request")
	}

	if accept {
		ownFlag := req.VolunteerUpdated
		if party == PartyCampaigner {
			ownFlag = req.CampaignerUpdated
		}
		if ownFlag {
			return false, domain.E(domain.KindSelfEditConflict, "You cannot accept a request you just edited")
		}

		if err := s.requests.Accept(ctx, req.ID, c.ID, req.VolunteerID); err != nil {
			if errors.Is(err, repository.ErrAssignmentTaken) {
				return false, domain.E(domain.KindAssignedElsewhere, "Campaign assigned to another volunteer")
			}
			return false, err
		}
		metrics.IncrementRequestTransition("accepted")
		s.publish(ctx, mq.KeyRequestAccepted, requestEvent{CampaignID: c.ID, VolunteerID: req.VolunteerID})
		return true, nil
	}

	req.Requirements = requirements
	if party == PartyVolunteer {
		req.VolunteerUpdated = true
	} else {
		req.CampaignerUpdated = true
	}
	if err := s.requests.Update(ctx, req); err != nil {
		return false, err
	}
	metrics.IncrementRequestTransition("edited")
	return false, nil
}

// WithdrawAsVolunteer deletes the volunteer's non-accepted request.
func (s *Service) WithdrawAsVolunteer(ctx context.Context, volunteerID, campaignID int64) error {
	req, _, err := s.guardVolunteer(ctx, volunteerID, campaignID)
	if err != nil {
		return err
	}
	return s.withdraw(ctx, req)
}

// WithdrawAsCampaigner rejects a request against the campaigner's campaign.
func (s *Service) WithdrawAsCampaigner(ctx context.Context, campaignerID, campaignID, volunteerID int64) error {
	req, _, err := s.guardCampaigner(ctx, campaignerID, campaignID, volunteerID)
	if err != nil {
		return err
	}
	return s.withdraw(ctx, req)
}

func (s *Service) withdraw(ctx context.Context, req *model.Request) error {
	if req.Assigned {
		return domain.E(domain.KindImmutable, "You cannot delete an accepted request")
	}
	if err := s.requests.Delete(ctx, req.ID); err != nil {
		return err
	}
	metrics.IncrementRequestTransition("deleted")
	s.publish(ctx, mq.KeyRequestDeleted, requestEvent{CampaignID: req.CampaignID, VolunteerID: req.VolunteerID})
	return nil
}

// guardVolunteer resolves the (campaign, caller) request and its campaign,
// refusing access once the campaign is assigned to a different volunteer.
func (s *Service) guardVolunteer(ctx context.Context, volunteerID, campaignID int64) (*model.Request, *model.Campaign, error) {
	req, err := s.findRequest(ctx, campaignID, volunteerID)
	if err != nil {
		return nil, nil, err
	}

	c, err := s.findCampaign(ctx, campaignID)
	if err != nil {
		return nil, nil, err
	}
	if c.AssignedTo != nil && !c.AssignedToVolunteer(volunteerID) {
		return nil, nil, domain.E(domain.KindAssignedElsewhere, "Campaign assigned to another volunteer")
	}
	return req, c, nil
}

// guardCampaigner resolves a request against one of the caller's campaigns.
func (s *Service) guardCampaigner(ctx context.Context, campaignerID, campaignID, volunteerID int64) (*model.Request, *model.Campaign, error) {
	c, err := s.findOwnedCampaign(ctx, campaignerID, campaignID)
	if err != nil {
		return nil, nil, err
	}

	req, err := s.findRequest(ctx, campaignID, volunteerID)
	if err != nil {
		return nil, nil, err
	}
	return req, c, nil
}

func (s *Service) findRequest(ctx context.Context, campaignID, volunteerID int64) (*model.Request, error) {
	req, err := s.requests.FindByPair(ctx, campaignID, volunteerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "Request does not exist")
		}
		return nil, err
	}
	return req, nil
}

func (s *Service) findCampaign(ctx context.Context, campaignID int64) (*model.Campaign, error) {
	c, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "Campaign does not exist")
		}
		return nil, err
	}
	return c, nil
}

func (s *Service) findOwnedCampaign(ctx context.Context, campaignerID, campaignID int64) (*model.Campaign, error) {
	c, err := s.findCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if c.CampaignerID != campaignerID {
		return nil, domain.E(domain.KindForbidden, "Campaign belongs to another campaigner")
	}
	return c, nil
}

type requestEvent struct {
	CampaignID  int64 `json:"campaign_id"`
	VolunteerID int64 `json:"volunteer_id"`
}

func (s *Service) publish(ctx context.Context, key string, payload any) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(key, payload); err != nil {
		logger.WithTrace(ctx, s.log).Warn("event publish failed",
			zap.String("routing_key", key),
			zap.Error(err),
		)
	}
}
