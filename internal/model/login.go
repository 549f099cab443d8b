package model

const (
	RoleVolunteer  = "volunteer"
	RoleCampaigner = "campaigner"
)

// Login is the credential record; ProfileID points at the volunteer or
// campaigner row matching Role.
type Login struct {
	ID        int64  `json:"-"`
	Username  string `json:"username"`
	Hash      string `json:"-"`
	ProfileID int64  `json:"-"`
	Role      string `json:"role"`
}
