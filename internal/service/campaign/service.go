package campaign

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/domain"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/logger"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/mq"
)

type Store interface {
	Create(ctx context.Context, c *model.Campaign) error
	FindByID(ctx context.Context, id int64) (*model.Campaign, error)
	Update(ctx context.Context, c *model.Campaign) error
	Delete(ctx context.Context, id int64) error
	ListByCampaigner(ctx context.Context, campaignerID int64) ([]model.Campaign, error)
	SetCompletion(ctx context.Context, campaignID, volunteerID int64, pct int) (bool, error)
}

type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

type Service struct {
	campaigns Store
	events    EventPublisher
	log       *zap.Logger
}

func NewService(campaigns Store, events EventPublisher, log *zap.Logger) *Service {
	return &Service{campaigns: campaigns, events: events, log: log}
}

type Input struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Goal        string
	Contact     string
}

// Create registers a new campaign owned by the caller, unassigned and at
// zero completion.
func (s *Service) Create(ctx context.Context, campaignerID int64, in Input) (*model.Campaign, error) {
	c := &model.Campaign{
		CampaignerID: campaignerID,
		Name:         in.Name,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Goal:         in.Goal,
		Contact:      in.Contact,
	}
	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetOwned returns a campaign scoped to its owning campaigner.
func (s *Service) GetOwned(ctx context.Context, campaignerID, campaignID int64) (*model.Campaign, error) {
	c, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "Campaign does not exist")
		}
		return nil, err
	}
	if c.CampaignerID != campaignerID {
		return nil, domain.E(domain.KindForbidden, "Campaign belongs to another campaigner")
	}
	return c, nil
}

// Update rewrites the campaigner-editable fields of an owned campaign.
func (s *Service) Update(ctx context.Context, campaignerID, campaignID int64, in Input) error {
	c, err := s.GetOwned(ctx, campaignerID, campaignID)
	if err != nil {
		return err
	}

	c.Name = in.Name
	c.Description = in.Description
	c.StartDate = in.StartDate
	c.EndDate = in.EndDate
	c.Goal = in.Goal
	c.Contact = in.Contact

	return s.campaigns.Update(ctx, c)
}

// Delete removes an owned campaign, refused once it has been assigned.
func (s *Service) Delete(ctx context.Context, campaignerID, campaignID int64) error {
	c, err := s.GetOwned(ctx, campaignerID, campaignID)
	if err != nil {
		return err
	}
	if c.AssignedTo != nil {
		return domain.E(domain.KindConflict, "Cannot delete an assigned campaign")
	}
	return s.campaigns.Delete(ctx, c.ID)
}

// ListBuckets splits a campaigner's campaigns into assigned and unassigned.
func (s *Service) ListBuckets(ctx context.Context, campaignerID int64) (assigned, unassigned []model.Campaign, err error) {
	campaigns, err := s.campaigns.ListByCampaigner(ctx, campaignerID)
	if err != nil {
		return nil, nil, err
	}
	for _, c := range campaigns {
		if c.AssignedTo != nil {
			assigned = append(assigned, c)
		} else {
			unassigned = append(unassigned, c)
		}
	}
	return assigned, unassigned, nil
}

// GetAssigned returns a campaign scoped to its assigned volunteer.
func (s *Service) GetAssigned(ctx context.Context, volunteerID, campaignID int64) (*model.Campaign, error) {
	c, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "Campaign does not exist")
		}
		return nil, err
	}
	if !c.AssignedToVolunteer(volunteerID) {
		return nil, domain.E(domain.KindAssignedElsewhere, "Campaign assigned to another volunteer")
	}
	return c, nil
}

// SetCompletion raises the completion percentage of a campaign assigned to
// the caller. Progress never decreases and never exceeds 100; the volunteer's
// completed count goes up only when this call crosses the 100 line.
func (s *Service) SetCompletion(ctx context.Context, volunteerID, campaignID int64, pct int) error {
	c, err := s.GetAssigned(ctx, volunteerID, campaignID)
	if err != nil {
		return err
	}

	if pct > 100 {
		return domain.E(domain.KindInvalidProgress, "Completion percentage should be less than or equal to 100")
	}
	if pct < c.CompletionPercent {
		return domain.E(domain.KindInvalidProgress, "Completion percentage cannot be decreased")
	}

	completed, err := s.campaigns.SetCompletion(ctx, campaignID, volunteerID, pct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost a race with a concurrent higher update; same outcome as
			// the pre-check above.
			return domain.E(domain.KindInvalidProgress, "Completion percentage cannot be decreased")
		}
		return err
	}

	if completed {
		s.publish(ctx, mq.KeyCampaignCompleted, campaignEvent{CampaignID: campaignID, VolunteerID: volunteerID})
	}
	return nil
}

type campaignEvent struct {
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
