package negotiation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
)

func TestReconcile(t *testing.T) {
	winner := int64(20)
	loser := int64(21)

	campaigns := map[int64]*model.Campaign{
		1: {ID: 1, AssignedTo: &winner},
		2: {ID: 2},
	}
	requests := []model.Request{
		{ID: 100, CampaignID: 1, VolunteerID: winner},
		{ID: 101, CampaignID: 1, VolunteerID: loser},
		{ID: 102, CampaignID: 2, VolunteerID: loser},
		{ID: 103, CampaignID: 3, VolunteerID: loser}, // campaign gone
	}

	live, stale := Reconcile(requests, campaigns)

	liveIDs := make([]int64, 0, len(live))
	for _, req := range live {
		liveIDs = append(liveIDs, req.ID)
	}
	assert.Equal(t, []int64{100, 102}, liveIDs)
	assert.Equal(t, []int64{101, 103}, stale)
}

func TestReconcile_Empty(t *testing.T) {
	live, stale := Reconcile(nil, nil)
	assert.Empty(t, live)
	assert.Empty(t, stale)
}
