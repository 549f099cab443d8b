package directory

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/domain"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
)

type fakeCampaignStore struct {
	results  []model.Campaign
	lastName string
	lastExcl int64
}

func (f *fakeCampaignStore) SearchUnassigned(_ context.Context, name string, excludeVolunteerID int64) ([]model.Campaign, error) {
	f.lastName = name
	f.lastExcl = excludeVolunteerID
	return f.results, nil
}

type fakeVolunteerStore struct {
	byID    map[int64]*model.Volunteer
	results []model.Volunteer
}

func (f *fakeVolunteerStore) FindByID(_ context.Context, id int64) (*model.Volunteer, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return v, nil
}

func (f *fakeVolunteerStore) SearchUnflagged(context.Context, string) ([]model.Volunteer, error) {
	return f.results, nil
}

func TestFindCampaigns(t *testing.T) {
	campaigns := &fakeCampaignStore{results: []model.Campaign{
		{ID: 1, Name: "Beach Cleanup"},
		{ID: 2, Name: "Beach Patrol"},
	}}
	svc := NewService(campaigns, &fakeVolunteerStore{})

	hits, err := svc.FindCampaigns(context.Background(), 20, "beach")
	require.NoError(t, err)
	assert.Equal(t, []Hit{{ID: 1, Name: "Beach Cleanup"}, {ID: 2, Name: "Beach Patrol"}}, hits)
	assert.Equal(t, "beach", campaigns.lastName)
	assert.Equal(t, int64(20), campaigns.lastExcl)
}

func TestFindVolunteers(t *testing.T) {
	volunteers := &fakeVolunteerStore{results: []model.Volunteer{{ID: 7, Name: "Asha"}}}
	svc := NewService(&fakeCampaignStore{}, volunteers)

	hits, err := svc.FindVolunteers(context.Background(), "ash")
	require.NoError(t, err)
	assert.Equal(t, []Hit{{ID: 7, Name: "Asha"}}, hits)
}

func TestVolunteerProfile(t *testing.T) {
	volunteers := &fakeVolunteerStore{byID: map[int64]*model.Volunteer{
		7: {ID: 7, Name: "Asha", CampaignsCompleted: 3},
	}}
	svc := NewService(&fakeCampaignStore{}, volunteers)

	v, err := svc.VolunteerProfile(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3, v.CampaignsCompleted)

	_, err = svc.VolunteerProfile(context.Background(), 404)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
