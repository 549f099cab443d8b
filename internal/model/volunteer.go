package model

type Volunteer struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Contact            string `json:"contact"`
	Email              string `json:"email"`
	ProfilePic         string `json:"profile_pic"`
	CampaignsCompleted int    `json:"campaigns_completed"`
	IsFlagged          bool   `json:"is_flagged"`
}

type Campaigner struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	Email      string `json:"email"`
	ProfilePic string `json:"profile_pic"`
	IsFlagged  bool   `json:"is_flagged"`
}
