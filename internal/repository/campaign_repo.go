package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
)

type CampaignRepository struct {
	db *pgxpool.Pool
}

func NewCampaignRepository(db *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{db: db}
}

const campaignColumns = `
    id, campaigner_id, name, description, start_date, end_date, goal, contact,
    assigned_to, is_flagged, completion_percent, created_date
`

func scanCampaign(row pgx.Row) (*model.Campaign, error) {
	var c model.Campaign
	err := row.Scan(
		&c.ID, &c.CampaignerID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
		&c.Goal, &c.Contact, &c.AssignedTo, &c.IsFlagged, &c.CompletionPercent, &c.CreatedDate,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new campaign with default completion and no assignment.
func (r *CampaignRepository) Create(ctx context.Context, c *model.Campaign) error {
	defer observe(time.Now(), "insert", "campaign")
	query := `
        INSERT INTO campaign (campaigner_id, name, description, start_date, end_date, goal, contact)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_date
    `
	return r.db.QueryRow(ctx, query,
		c.CampaignerID, c.Name, c.Description, c.StartDate, c.EndDate, c.Goal, c.Contact,
	).Scan(&c.ID, &c.CreatedDate)
}

// FindByID returns a campaign by id.
func (r *CampaignRepository) FindByID(ctx context.Context, id int64) (*model.Campaign, error) {
	defer observe(time.Now(), "select", "campaign")
	query := `SELECT ` + campaignColumns + ` FROM campaign WHERE id = $1`
	return scanCampaign(r.db.QueryRow(ctx, query, id))
}

// Update rewrites the campaigner-editable fields.
func (r *CampaignRepository) Update(ctx context.Context, c *model.Campaign) error {
	defer observe(time.Now(), "update", "campaign")
	query := `
        UPDATE campaign
        SET name = $1, description = $2, start_date = $3, end_date = $4, goal = $5, contact = $6
        WHERE id = $7
    `
	_, err := r.db.Exec(ctx, query,
		c.Name, c.Description, c.StartDate, c.EndDate, c.Goal, c.Contact, c.ID,
	)
	return err
}

// Delete removes a campaign. Requests referencing it cascade away.
func (r *CampaignRepository) Delete(ctx context.Context, id int64) error {
	defer observe(time.Now(), "delete", "campaign")
	_, err := r.db.Exec(ctx, `DELETE FROM campaign WHERE id = $1`, id)
	return err
}

// ListByCampaigner returns all campaigns owned by a campaigner.
func (r *CampaignRepository) ListByCampaigner(ctx context.Context, campaignerID int64) ([]model.Campaign, error) {
	defer observe(time.Now(), "select", "campaign")
	query := `SELECT ` + campaignColumns + ` FROM campaign WHERE campaigner_id = $1 ORDER BY created_date`
	return r.list(ctx, query, campaignerID)
}

// ListActiveByVolunteer returns unfinished campaigns assigned to a volunteer.
func (r *CampaignRepository) ListActiveByVolunteer(ctx context.Context, volunteerID int64) ([]model.Campaign, error) {
	defer observe(time.Now(), "select", "campaign")
	query := `
        SELECT ` + campaignColumns + `
        FROM campaign
        WHERE assigned_to = $1 AND completion_percent < 100
        ORDER BY created_date
    `
	return r.list(ctx, query, volunteerID)
}

// ListActiveAssignedByCampaigner returns a campaigner's campaigns that are
// assigned and unfinished.
func (r *CampaignRepository) ListActiveAssignedByCampaigner(ctx context.Context, campaignerID int64) ([]model.Campaign, error) {
	defer observe(time.Now(), "select", "campaign")
	query := `
        SELECT ` + campaignColumns + `
        FROM campaign
        WHERE campaigner_id = $1 AND assigned_to IS NOT NULL AND completion_percent < 100
        ORDER BY created_date
    `
	return r.list(ctx, query, campaignerID)
}

// SearchUnassigned returns unflagged, unassigned campaigns whose name matches
// case-insensitively, excluding campaigns the volunteer already requested.
func (r *CampaignRepository) SearchUnassigned(ctx context.Context, name string, excludeVolunteerID int64) ([]model.Campaign, error) {
	defer observe(time.Now(), "select", "campaign")
	query := `
        SELECT ` + campaignColumns + `
        FROM campaign c
        WHERE c.name ILIKE '%' || $1 || '%'
          AND c.is_flagged = FALSE
          AND c.assigned_to IS NULL
          AND NOT EXISTS (
              SELECT 1 FROM request r
              WHERE r.campaign_id = c.id AND r.volunteer_id = $2
          )
        ORDER BY c.name
    `
	return r.list(ctx, query, name, excludeVolunteerID)
}

// SetCompletion raises completion_percent to pct, guarded against decrease at
// the store so concurrent updates cannot regress it. On the below-100 to 100
// transition it increments the volunteer's completed count in the same
// transaction; repeated calls with 100 do not count twice. Returns whether
// this call completed the campaign.
func (r *CampaignRepository) SetCompletion(ctx context.Context, campaignID, volunteerID int64, pct int) (bool, error) {
	defer observe(time.Now(), "update", "campaign")

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	query := `
        UPDATE campaign c
        SET completion_percent = $2
        FROM (SELECT completion_percent AS prev FROM campaign WHERE id = $1 FOR UPDATE) old
        WHERE c.id = $1 AND old.prev <= $2
        RETURNING old.prev
    `
	var prev int
	if err := tx.QueryRow(ctx, query, campaignID, pct).Scan(&prev); err != nil {
		return false, err
	}

	completed := prev < 100 && pct == 100
	if completed {
		incr := `UPDATE volunteer SET campaigns_completed = campaigns_completed + 1 WHERE id = $1`
		if _, err := tx.Exec(ctx, incr, volunteerID); err != nil {
			return false, err
		}
	}

	return completed, tx.Commit(ctx)
}

func (r *CampaignRepository) list(ctx context.Context, query string, args ...any) ([]model.Campaign, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}
