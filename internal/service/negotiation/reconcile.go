package negotiation

import "github.com/Arvin-Samuel-A/EnviroHelp/internal/model"

// Reconcile partitions non-accepted requests into live ones and stale ids.
// A request is stale when its campaign has been assigned to a different
// volunteer, or when the campaign no longer exists. It is a pure function;
// deleting the stale requests is the caller's side effect.
func Reconcile(requests []model.Request, campaigns map[int64]*model.Campaign) (live []model.Request, staleIDs []int64) {
	for _, req := range requests {
		c, ok := campaigns[req.CampaignID]
		if !ok {
			staleIDs = append(staleIDs, req.ID)
			continue
		}
		if c.AssignedTo != nil && *c.AssignedTo != req.VolunteerID {
			staleIDs = append(staleIDs, req.ID)
			continue
		}
		live = append(live, req)
	}
	return live, staleIDs
}
