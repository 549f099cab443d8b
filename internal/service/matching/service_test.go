package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/repository"
)

type fakeCampaignStore struct {
	activeByVolunteer  []model.Campaign
	activeByCampaigner []model.Campaign
}

func (f *fakeCampaignStore) ListActiveByVolunteer(context.Context, int64) ([]model.Campaign, error) {
	return f.activeByVolunteer, nil
}

func (f *fakeCampaignStore) ListActiveAssignedByCampaigner(context.Context, int64) ([]model.Campaign, error) {
	return f.activeByCampaigner, nil
}

type fakeRequestStore struct {
	pending  []repository.VolunteerPendingRow
	incoming []repository.CampaignerIncomingRow
	deleted  []int64
}

func (f *fakeRequestStore) ListPendingByVolunteer(context.Context, int64) ([]repository.VolunteerPendingRow, error) {
	return f.pending, nil
}

func (f *fakeRequestStore) ListIncomingByCampaigner(context.Context, int64) ([]repository.CampaignerIncomingRow, error) {
	return f.incoming, nil
}

func (f *fakeRequestStore) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestVolunteerHome_SurfacesLiveDropsStale(t *testing.T) {
	me := int64(20)
	rival := int64(21)

	requests := &fakeRequestStore{
		pending: []repository.VolunteerPendingRow{
			{
				Request:        model.Request{ID: 100, CampaignID: 1, VolunteerID: me, CampaignerUpdated: true},
				Campaign:       model.Campaign{ID: 1, Name: "River Cleanup"},
				CampaignerName: "Dana",
			},
			{
				// Campaign taken by a rival while this request sat open.
				Request:        model.Request{ID: 101, CampaignID: 2, VolunteerID: me},
				Campaign:       model.Campaign{ID: 2, Name: "Tree Planting", AssignedTo: &rival},
				CampaignerName: "Eli",
			},
		},
	}
	campaigns := &fakeCampaignStore{
		activeByVolunteer: []model.Campaign{
			{ID: 3, Name: "Food Drive", CompletionPercent: 40},
		},
	}

	svc := NewService(campaigns, requests, zap.NewNop())
	home, err := svc.VolunteerHome(context.Background(), &model.Volunteer{ID: me, Name: "Asha", CampaignsCompleted: 2})
	require.NoError(t, err)

	assert.Equal(t, "Asha", home.Name)
	assert.Equal(t, 2, home.CampaignsCompleted)
	require.Len(t, home.ActiveCampaigns, 1)
	assert.Equal(t, int64(3), home.ActiveCampaigns[0].ID)
	assert.Equal(t, 40, home.ActiveCampaigns[0].CompletionPercent)

	require.Len(t, home.NewRequests, 1)
	assert.Equal(t, int64(1), home.NewRequests[0].CampaignID)
	assert.Equal(t, "Dana", home.NewRequests[0].CampaignerName)
	assert.True(t, home.NewRequests[0].CampaignerUpdated)

	// The superseded request was deleted, not surfaced.
	assert.Equal(t, []int64{101}, requests.deleted)
}

func TestCampaignerHome_SurfacesLiveDropsStale(t *testing.T) {
	applicant := int64(20)
	rival := int64(21)

	requests := &fakeRequestStore{
		incoming: []repository.CampaignerIncomingRow{
			{
				Request:       model.Request{ID: 200, CampaignID: 5, VolunteerID: applicant, VolunteerUpdated: true},
				Campaign:      model.Campaign{ID: 5, Name: "Beach Cleanup"},
				VolunteerName: "Asha",
			},
			{
				Request:       model.Request{ID: 201, CampaignID: 6, VolunteerID: applicant},
				Campaign:      model.Campaign{ID: 6, Name: "Recycling", AssignedTo: &rival},
				VolunteerName: "Asha",
			},
		},
	}
	campaigns := &fakeCampaignStore{
		activeByCampaigner: []model.Campaign{
			{ID: 6, Name: "Recycling", CompletionPercent: 80},
		},
	}

	svc := NewService(campaigns, requests, zap.NewNop())
	home, err := svc.CampaignerHome(context.Background(), &model.Campaigner{ID: 10, Name: "Dana"})
	require.NoError(t, err)

	require.Len(t, home.NewRequests, 1)
	assert.Equal(t, int64(5), home.NewRequests[0].CampaignID)
	assert.Equal(t, applicant, home.NewRequests[0].VolunteerID)
	assert.True(t, home.NewRequests[0].VolunteerUpdated)
	assert.Equal(t, []int64{201}, requests.deleted)
}

func TestVolunteerHome_EmptyStateHasEmptySlices(t *testing.T) {
	svc := NewService(&fakeCampaignStore{}, &fakeRequestStore{}, zap.NewNop())

	home, err := svc.VolunteerHome(context.Background(), &model.Volunteer{ID: 20, Name: "Asha"})
	require.NoError(t, err)

	// Empty, never nil: these serialize as [] rather than null.
	assert.NotNil(t, home.ActiveCampaigns)
	assert.NotNil(t, home.NewRequests)
	assert.Empty(t, home.ActiveCampaigns)
	assert.Empty(t, home.NewRequests)
}
