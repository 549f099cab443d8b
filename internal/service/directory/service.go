package directory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/domain"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
)

type CampaignStore interface {
	SearchUnassigned(ctx context.Context, name string, excludeVolunteerID int64) ([]model.Campaign, error)
}

type VolunteerStore interface {
	FindByID(ctx context.Context, id int64) (*model.Volunteer, error)
	SearchUnflagged(ctx context.Context, name string) ([]model.Volunteer, error)
}

// Service is the read-only name directory. No state mutation.
type Service struct {
	campaigns  CampaignStore
	volunteers VolunteerStore
}

func NewService(campaigns CampaignStore, volunteers VolunteerStore) *Service {
	return &Service{campaigns: campaigns, volunteers: volunteers}
}

type Hit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FindCampaigns returns unflagged, unassigned campaigns matching the name,
// excluding ones the searching volunteer has already requested.
func (s *Service) FindCampaigns(ctx context.Context, volunteerID int64, name string) ([]Hit, error) {
	campaigns, err := s.campaigns.SearchUnassigned(ctx, name, volunteerID)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(campaigns))
	for _, c := range campaigns {
		hits = append(hits, Hit{ID: c.ID, Name: c.Name})
	}
	return hits, nil
}

// VolunteerProfile returns a volunteer's profile for the detail view.
func (s *Service) VolunteerProfile(ctx context.Context, volunteerID int64) (*model.Volunteer, error) {
	v, err := s.volunteers.FindByID(ctx, volunteerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "Volunteer not found")
		}
		return nil, err
	}
	return v, nil
}

// FindVolunteers returns unflagged volunteers matching the name.
func (s *Service) FindVolunteers(ctx context.Context, name string) ([]Hit, error) {
	volunteers, err := s.volunteers.SearchUnflagged(ctx, name)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, 0, len(volunteers))
	for _, v := range volunteers {
		hits = append(hits, Hit{ID: v.ID, Name: v.Name})
	}
	return hits, nil
}
