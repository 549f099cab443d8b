package model

import "time"

// Campaign is a unit of work owned by one campaigner. AssignedTo is nil
// until exactly one request for it is accepted.
type Campaign struct {
	ID                int64     `json:"id"`
	CampaignerID      int64     `json:"-"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	StartDate         time.Time `json:"start_date"`
	EndDate           time.Time `json:"end_date"`
	Goal              string    `json:"goal"`
	Contact           string    `json:"contact"`
	AssignedTo        *int64    `json:"assigned_to"`
	IsFlagged         bool      `json:"is_flagged"`
	CompletionPercent int       `json:"completion_percent"`
	CreatedDate       time.Time `json:"created_date"`
}

// Active reports whether the campaign still has work left.
func (c *Campaign) Active() bool {
	return c.CompletionPercent < 100
}

// AssignedToVolunteer reports whether the campaign is assigned to the given
// volunteer.
func (c *Campaign) AssignedToVolunteer(volunteerID int64) bool {
	return c.AssignedTo != nil && *c.AssignedTo == volunteerID
}
