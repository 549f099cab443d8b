package model

// Request is a proposed pairing between one campaign and one volunteer.
// At most one exists per (campaign, volunteer) pair.
//
// The two updated flags form the negotiation handshake: a party's flag is
// true while its latest edit has not been reviewed by the counterparty, and
// a party may never accept while its own flag is set. Once Assigned is true
// the record is immutable.
type Request struct {
	ID                int64  `json:"-"`
	CampaignID        int64  `json:"campaign_id"`
	VolunteerID       int64  `json:"volunteer_id"`
	Requirements      string `json:"requirements"`
	Assigned          bool   `json:"assigned"`
	VolunteerUpdated  bool   `json:"volunteer_updated"`
	CampaignerUpdated bool   `json:"campaigner_updated"`
}
