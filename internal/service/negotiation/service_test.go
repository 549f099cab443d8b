package negotiation

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/domain"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/repository"
)

type fakeCampaignStore struct {
	byID map[int64]*model.Campaign
}

func (f *fakeCampaignStore) FindByID(_ context.Context, id int64) (*model.Campaign, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *c
	return &copied, nil
}

type fakeVolunteerStore struct {
	byID map[int64]*model.Volunteer
}

func (f *fakeVolunteerStore) FindByID(_ context.Context, id int64) (*model.Volunteer, error) {
	v, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *v
	return &copied, nil
}

type fakeRequestStore struct {
	byID      map[int64]*model.Request
	campaigns *fakeCampaignStore
	nextID    int64
}

func newFakeRequestStore(campaigns *fakeCampaignStore) *fakeRequestStore {
	return &fakeRequestStore{byID: make(map[int64]*model.Request), campaigns: campaigns}
}

func (f *fakeRequestStore) Create(_ context.Context, req *model.Request) error {
	for _, existing := range f.byID {
		if existing.CampaignID == req.CampaignID && existing.VolunteerID == req.VolunteerID {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	req.ID = f.nextID
	copied := *req
	f.byID[req.ID] = &copied
	return nil
}

func (f *fakeRequestStore) FindByPair(_ context.Context, campaignID, volunteerID int64) (*model.Request, error) {
	for _, req := range f.byID {
		if req.CampaignID == campaignID && req.VolunteerID == volunteerID {
			copied := *req
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeRequestStore) Update(_ context.Context, req *model.Request) error {
	stored, ok := f.byID[req.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Requirements = req.Requirements
	stored.VolunteerUpdated = req.VolunteerUpdated
	stored.CampaignerUpdated = req.CampaignerUpdated
	return nil
}

func (f *fakeRequestStore) ClearVolunteerUpdated(_ context.Context, id int64) error {
	f.byID[id].VolunteerUpdated = false
	return nil
}

func (f *fakeRequestStore) ClearCampaignerUpdated(_ context.Context, id int64) error {
	f.byID[id].CampaignerUpdated = false
	return nil
}

func (f *fakeRequestStore) Delete(_ context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

// Accept mimics the conditional assignment update: it only succeeds while the
// campaign's pointer is unset.
func (f *fakeRequestStore) Accept(_ context.Context, requestID, campaignID, volunteerID int64) error {
	c, ok := f.campaigns.byID[campaignID]
	if !ok {
		return pgx.ErrNoRows
	}
	if c.AssignedTo != nil {
		return repository.ErrAssignmentTaken
	}
	c.AssignedTo = &volunteerID
	f.byID[requestID].Assigned = true
	return nil
}

type fakeEvents struct {
	keys []string
}

func (f *fakeEvents) Publish(routingKey string, _ any) error {
	f.keys = append(f.keys, routingKey)
	return nil
}

type fixture struct {
	svc        *Service
	requests   *fakeRequestStore
	campaigns  *fakeCampaignStore
	volunteers *fakeVolunteerStore
	events     *fakeEvents
}

const (
	campaignerID = int64(10)
	volunteerID  = int64(20)
	campaignID   = int64(1)
)

func newFixture() *fixture {
	campaigns := &fakeCampaignStore{byID: map[int64]*model.Campaign{
		campaignID: {ID: campaignID, CampaignerID: campaignerID, Name: "Beach Cleanup", Contact: "beach@example.com"},
	}}
	volunteers := &fakeVolunteerStore{byID: map[int64]*model.Volunteer{
		volunteerID: {ID: volunteerID, Name: "Asha"},
	}}
	requests := newFakeRequestStore(campaigns)
	events := &fakeEvents{}
	return &fixture{
		svc:        NewService(requests, campaigns, volunteers, events, zap.NewNop()),
		requests:   requests,
		campaigns:  campaigns,
		volunteers: volunteers,
		events:     events,
	}
}

func (f *fixture) request(t *testing.T) *model.Request {
	t.Helper()
	req, err := f.requests.FindByPair(context.Background(), campaignID, volunteerID)
	require.NoError(t, err)
	return req
}

func TestApply_SetsVolunteerFlagOnly(t *testing.T) {
	f := newFixture()

	err := f.svc.Apply(context.Background(), volunteerID, campaignID, "weekends only")
	require.NoError(t, err)

	req := f.request(t)
	assert.True(t, req.VolunteerUpdated)
	assert.False(t, req.CampaignerUpdated)
	assert.False(t, req.Assigned)
	assert.Equal(t, "weekends only", req.Requirements)
	assert.Equal(t, []string{"request.created"}, f.events.keys)
}

func TestApply_DuplicatePairConflicts(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, ""))

	err := f.svc.Apply(context.Background(), volunteerID, campaignID, "again")
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
}

func TestApply_AssignedCampaignRefused(t *testing.T) {
	f := newFixture()
	other := int64(99)
	f.campaigns.byID[campaignID].AssignedTo = &other

	err := f.svc.Apply(context.Background(), volunteerID, campaignID, "")
	assert.Equal(t, domain.KindAssignedElsewhere, domain.KindOf(err))
}

func TestApply_MissingCampaign(t *testing.T) {
	f := newFixture()

	err := f.svc.Apply(context.Background(), volunteerID, int64(404), "")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestInvite_SetsCampaignerFlagOnly(t *testing.T) {
	f := newFixture()

	err := f.svc.Invite(context.Background(), campaignerID, campaignID, volunteerID, "bring gloves")
	require.NoError(t, err)

	req := f.request(t)
	assert.False(t, req.VolunteerUpdated)
	assert.True(t, req.CampaignerUpdated)
}

func TestInvite_ForeignCampaignForbidden(t *testing.T) {
	f := newFixture()

	err := f.svc.Invite(context.Background(), int64(77), campaignID, volunteerID, "")
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestInvite_UnknownVolunteer(t *testing.T) {
	f := newFixture()

	err := f.svc.Invite(context.Background(), campaignerID, campaignID, int64(404), "")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestAccept_OwnEditBlocks(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, "initial"))

	// The proposer's own flag is still raised from creation.
	_, err := f.svc.UpdateAsVolunteer(context.Background(), volunteerID, campaignID, "initial", true)
	assert.Equal(t, domain.KindSelfEditConflict, domain.KindOf(err))
}

func TestAccept_CounterpartyEditDoesNotUnblockProposer(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, "initial"))

	// Campaigner counter-edits: raises campaigner_updated, leaves the
	// volunteer's flag from creation untouched.
	_, err := f.svc.UpdateAsCampaigner(context.Background(), campaignerID, campaignID, volunteerID, "counter", false)
	require.NoError(t, err)

	req := f.request(t)
	assert.True(t, req.VolunteerUpdated)
	assert.True(t, req.CampaignerUpdated)

	// The volunteer still cannot accept: their own flag is raised.
	_, err = f.svc.UpdateAsVolunteer(context.Background(), volunteerID, campaignID, "counter", true)
	assert.Equal(t, domain.KindSelfEditConflict, domain.KindOf(err))

	// The campaigner cannot accept either after their own edit.
	_, err = f.svc.UpdateAsCampaigner(context.Background(), campaignerID, campaignID, volunteerID, "counter", true)
	assert.Equal(t, domain.KindSelfEditConflict, domain.KindOf(err))
}

func TestAccept_SetsAssignmentPointer(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, "initial"))

	// Campaigner accepts the volunteer's proposal; their own flag is clear.
	accepted, err := f.svc.UpdateAsCampaigner(context.Background(), campaignerID, campaignID, volunteerID, "initial", true)
	require.NoError(t, err)
	assert.True(t, accepted)

	req := f.request(t)
	assert.True(t, req.Assigned)
	require.NotNil(t, f.campaigns.byID[campaignID].AssignedTo)
	assert.Equal(t, volunteerID, *f.campaigns.byID[campaignID].AssignedTo)
	assert.Contains(t, f.events.keys, "request.accepted")
}

func TestAccept_SecondRequestCannotOverwritePointer(t *testing.T) {
	f := newFixture()
	otherVolunteer := int64(21)
	f.volunteers.byID[otherVolunteer] = &model.Volunteer{ID: otherVolunteer, Name: "Ben"}

	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, ""))
	require.NoError(t, f.svc.Apply(context.Background(), otherVolunteer, campaignID, ""))

	_, err := f.svc.UpdateAsCampaigner(context.Background(), campaignerID, campaignID, volunteerID, "", true)
	require.NoError(t, err)

	// Accepting the second request must not overwrite the pointer: the
	// conditional write only succeeds while the pointer is unset.
	_, err = f.svc.UpdateAsCampaigner(context.Background(), campaignerID, campaignID, otherVolunteer, "", true)
	assert.Equal(t, domain.KindAssignedElsewhere, domain.KindOf(err))
	assert.Equal(t, volunteerID, *f.campaigns.byID[campaignID].AssignedTo)
}

func TestUpdate_AcceptedRequestImmutable(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, ""))
	_, err := f.svc.UpdateAsCampaigner(context.Background(), campaignerID, campaignID, volunteerID, "", true)
	require.NoError(t, err)

	_, err = f.svc.UpdateAsVolunteer(context.Background(), volunteerID, campaignID, "new terms", false)
	assert.Equal(t, domain.KindImmutable, domain.KindOf(err))

	err = f.svc.WithdrawAsVolunteer(context.Background(), volunteerID, campaignID)
	assert.Equal(t, domain.KindImmutable, domain.KindOf(err))

	err = f.svc.WithdrawAsCampaigner(context.Background(), campaignerID, campaignID, volunteerID)
	assert.Equal(t, domain.KindImmutable, domain.KindOf(err))
}

func TestCounterEdit_RaisesOnlyOwnFlag(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Invite(context.Background(), campaignerID, campaignID, volunteerID, "bring gloves"))

	_, err := f.svc.UpdateAsVolunteer(context.Background(), volunteerID, campaignID, "no gloves", false)
	require.NoError(t, err)

	req := f.request(t)
	assert.Equal(t, "no gloves", req.Requirements)
	assert.True(t, req.VolunteerUpdated)
	assert.True(t, req.CampaignerUpdated)
}

func TestWithdraw_DeletesPendingRequest(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, ""))

	require.NoError(t, f.svc.WithdrawAsVolunteer(context.Background(), volunteerID, campaignID))

	_, err := f.requests.FindByPair(context.Background(), campaignID, volunteerID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.Contains(t, f.events.keys, "request.deleted")
}

func TestView_ReadAcknowledgesCounterpartyFlag(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, "initial"))
	_, err := f.svc.UpdateAsCampaigner(context.Background(), campaignerID, campaignID, volunteerID, "counter", false)
	require.NoError(t, err)

	// Volunteer reads: the campaigner's pending-edit flag is cleared, the
	// payload still shows it was set.
	detail, err := f.svc.ViewAsVolunteer(context.Background(), volunteerID, campaignID)
	require.NoError(t, err)
	assert.True(t, detail.CampaignerUpdated)
	assert.False(t, f.request(t).CampaignerUpdated)

	// Campaigner reads: the volunteer's flag (raised at creation) clears.
	cdetail, err := f.svc.ViewAsCampaigner(context.Background(), campaignerID, campaignID, volunteerID)
	require.NoError(t, err)
	assert.True(t, cdetail.VolunteerUpdated)
	assert.False(t, f.request(t).VolunteerUpdated)
}

func TestView_MissingRequestNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ViewAsVolunteer(context.Background(), volunteerID, campaignID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestGuard_CampaignAssignedElsewhereBlocksVolunteer(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.svc.Apply(context.Background(), volunteerID, campaignID, ""))

	other := int64(99)
	f.campaigns.byID[campaignID].AssignedTo = &other

	_, err := f.svc.ViewAsVolunteer(context.Background(), volunteerID, campaignID)
	assert.Equal(t, domain.KindAssignedElsewhere, domain.KindOf(err))
}
