package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
)

// VolunteerPendingRow is a volunteer's non-accepted request joined with its
// campaign and the owning campaigner's name.
type VolunteerPendingRow struct {
	Request        model.Request
	Campaign       model.Campaign
	CampaignerName string
}

// CampaignerIncomingRow is a non-accepted request against one of a
// campaigner's campaigns, joined with the proposing volunteer's name.
type CampaignerIncomingRow struct {
	Request       model.Request
	Campaign      model.Campaign
	VolunteerName string
}

type RequestRepository struct {
	db *pgxpool.Pool
}

func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

// Create inserts a new request. Returns ErrDuplicate if one already exists
// for the (campaign, volunteer) pair.
func (r *RequestRepository) Create(ctx context.Context, req *model.Request) error {
	defer observe(time.Now(), "insert", "request")
	query := `
        INSERT INTO request (campaign_id, volunteer_id, requirements, assigned, volunteer_updated, campaigner_updated)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		req.CampaignID, req.VolunteerID, req.Requirements,
		req.Assigned, req.VolunteerUpdated, req.CampaignerUpdated,
	).Scan(&req.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// FindByPair returns the request for a (campaign, volunteer) pair.
func (r *RequestRepository) FindByPair(ctx context.Context, campaignID, volunteerID int64) (*model.Request, error) {
	defer observe(time.Now(), "select", "request")
	query := `
        SELECT id, campaign_id, volunteer_id, requirements, assigned, volunteer_updated, campaigner_updated
        FROM request
        WHERE campaign_id = $1 AND volunteer_id = $2
    `
	var req model.Request
	err := r.db.QueryRow(ctx, query, campaignID, volunteerID).Scan(
		&req.ID, &req.CampaignID, &req.VolunteerID, &req.Requirements,
		&req.Assigned, &req.VolunteerUpdated, &req.CampaignerUpdated,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Update rewrites the negotiable fields of a non-accepted request.
func (r *RequestRepository) Update(ctx context.Context, req *model.Request) error {
	defer observe(time.Now(), "update", "request")
	query := `
        UPDATE request
        SET requirements = $1, volunteer_updated = $2, campaigner_updated = $3
        WHERE id = $4
    `
	_, err := r.db.Exec(ctx, query,
		req.Requirements, req.VolunteerUpdated, req.CampaignerUpdated, req.ID,
	)
	return err
}

// ClearVolunteerUpdated acknowledges the volunteer's pending edit.
func (r *RequestRepository) ClearVolunteerUpdated(ctx context.Context, id int64) error {
	defer observe(time.Now(), "update", "request")
	_, err := r.db.Exec(ctx, `UPDATE request SET volunteer_updated = FALSE WHERE id = $1`, id)
	return err
}

// ClearCampaignerUpdated acknowledges the campaigner's pending edit.
func (r *RequestRepository) ClearCampaignerUpdated(ctx context.Context, id int64) error {
	defer observe(time.Now(), "update", "request")
	_, err := r.db.Exec(ctx, `UPDATE request SET campaigner_updated = FALSE WHERE id = $1`, id)
	return err
}

// Delete removes a request.
func (r *RequestRepository) Delete(ctx context.Context, id int64) error {
	defer observe(time.Now(), "delete", "request")
	_, err := r.db.Exec(ctx, `DELETE FROM request WHERE id = $1`, id)
	return err
}

// Accept marks the request accepted and points the campaign at the request's
// volunteer in one transaction. The campaign update is conditional on the
// assignment pointer being unset; if another acceptance won, nothing is
// written and ErrAssignmentTaken is returned.
func (r *RequestRepository) Accept(ctx context.Context, requestID, campaignID, volunteerID int64) error {
	defer observe(time.Now(), "update", "request")

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	assign := `
        UPDATE campaign
        SET assigned_to = $1
        WHERE id = $2 AND assigned_to IS NULL
    `
	tag, err := tx.Exec(ctx, assign, volunteerID, campaignID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAssignmentTaken
	}

	if _, err := tx.Exec(ctx, `UPDATE request SET assigned = TRUE WHERE id = $1`, requestID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// ListPendingByVolunteer returns a volunteer's non-accepted requests joined
// with campaign and campaigner for the home view.
func (r *RequestRepository) ListPendingByVolunteer(ctx context.Context, volunteerID int64) ([]VolunteerPendingRow, error) {
	defer observe(time.Now(), "select", "request")
	query := `
        SELECT r.id, r.campaign_id, r.volunteer_id, r.requirements, r.assigned,
               r.volunteer_updated, r.campaigner_updated,
               ` + prefixedCampaignColumns + `,
               p.name
        FROM request r
        JOIN campaign c ON c.id = r.campaign_id
        JOIN campaigner p ON p.id = c.campaigner_id
        WHERE r.volunteer_id = $1 AND r.assigned = FALSE
        ORDER BY r.id
    `
	rows, err := r.db.Query(ctx, query, volunteerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []VolunteerPendingRow
	for rows.Next() {
		var row VolunteerPendingRow
		if err := rows.Scan(
			&row.Request.ID, &row.Request.CampaignID, &row.Request.VolunteerID,
			&row.Request.Requirements, &row.Request.Assigned,
			&row.Request.VolunteerUpdated, &row.Request.CampaignerUpdated,
			&row.Campaign.ID, &row.Campaign.CampaignerID, &row.Campaign.Name,
			&row.Campaign.Description, &row.Campaign.StartDate, &row.Campaign.EndDate,
			&row.Campaign.Goal, &row.Campaign.Contact, &row.Campaign.AssignedTo,
			&row.Campaign.IsFlagged, &row.Campaign.CompletionPercent, &row.Campaign.CreatedDate,
			&row.CampaignerName,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// ListIncomingByCampaigner returns non-accepted requests against a
// campaigner's campaigns joined with the volunteer for the home view.
func (r *RequestRepository) ListIncomingByCampaigner(ctx context.Context, campaignerID int64) ([]CampaignerIncomingRow, error) {
	defer observe(time.Now(), "select", "request")
	query := `
        SELECT r.id, r.campaign_id, r.volunteer_id, r.requirements, r.assigned,
               r.volunteer_updated, r.campaigner_updated,
               ` + prefixedCampaignColumns + `,
               v.name
        FROM request r
        JOIN campaign c ON c.id = r.campaign_id
        JOIN volunteer v ON v.id = r.volunteer_id
        WHERE c.campaigner_id = $1 AND r.assigned = FALSE
        ORDER BY r.id
    `
	rows, err := r.db.Query(ctx, query, campaignerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []CampaignerIncomingRow
	for rows.Next() {
		var row CampaignerIncomingRow
		if err := rows.Scan(
			&row.Request.ID, &row.Request.CampaignID, &row.Request.VolunteerID,
			&row.Request.Requirements, &row.Request.Assigned,
			&row.Request.VolunteerUpdated, &row.Request.CampaignerUpdated,
			&row.Campaign.ID, &row.Campaign.CampaignerID, &row.Campaign.Name,
			&row.Campaign.Description, &row.Campaign.StartDate, &row.Campaign.EndDate,
			&row.Campaign.Goal, &row.Campaign.Contact, &row.Campaign.AssignedTo,
			&row.Campaign.IsFlagged, &row.Campaign.CompletionPercent, &row.Campaign.CreatedDate,
			&row.VolunteerName,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

const prefixedCampaignColumns = `
    c.id, c.campaigner_id, c.name, c.description, c.start_date, c.end_date,
    c.goal, c.contact, c.assigned_to, c.is_flagged, c.completion_percent, c.created_date
`
