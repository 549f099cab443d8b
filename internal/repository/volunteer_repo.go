package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
)

type VolunteerRepository struct {
	db *pgxpool.Pool
}

func NewVolunteerRepository(db *pgxpool.Pool) *VolunteerRepository {
	return &VolunteerRepository{db: db}
}

// Create inserts a new volunteer profile.
func (r *VolunteerRepository) Create(ctx context.Context, v *model.Volunteer) error {
	defer observe(time.Now(), "insert", "volunteer")
	query := `
        INSERT INTO volunteer (name, contact, email, profile_pic)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, v.Name, v.Contact, v.Email, v.ProfilePic).Scan(&v.ID)
}

// FindByID returns a volunteer by id.
func (r *VolunteerRepository) FindByID(ctx context.Context, id int64) (*model.Volunteer, error) {
	defer observe(time.Now(), "select", "volunteer")
	query := `
        SELECT id, name, contact, email, profile_pic, campaigns_completed, is_flagged
        FROM volunteer
        WHERE id = $1
    `
	var v model.Volunteer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.Contact, &v.Email, &v.ProfilePic, &v.CampaignsCompleted, &v.IsFlagged,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// SearchUnflagged returns unflagged volunteers whose name contains the query,
// case-insensitively.
func (r *VolunteerRepository) SearchUnflagged(ctx context.Context, name string) ([]model.Volunteer, error) {
	defer observe(time.Now(), "select", "volunteer")
	query := `
        SELECT id, name, contact, email, profile_pic, campaigns_completed, is_flagged
        FROM volunteer
        WHERE name ILIKE '%' || $1 || '%' AND is_flagged = FALSE
        ORDER BY name
    `
	rows, err := r.db.Query(ctx, query, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var volunteers []model.Volunteer
	for rows.Next() {
		var v model.Volunteer
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Contact, &v.Email, &v.ProfilePic, &v.CampaignsCompleted, &v.IsFlagged,
		); err != nil {
			return nil, err
		}
		volunteers = append(volunteers, v)
	}
	return volunteers, rows.Err()
}
