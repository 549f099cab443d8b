package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
)

type CampaignerRepository struct {
	db *pgxpool.Pool
}

func NewCampaignerRepository(db *pgxpool.Pool) *CampaignerRepository {
	return &CampaignerRepository{db: db}
}

// Create inserts a new campaigner profile.
func (r *CampaignerRepository) Create(ctx context.Context, c *model.Campaigner) error {
	defer observe(time.Now(), "insert", "campaigner")
	query := `
        INSERT INTO campaigner (name, contact, email, profile_pic)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.db.QueryRow(ctx, query, c.Name, c.Contact, c.Email, c.ProfilePic).Scan(&c.ID)
}

// FindByID returns a campaigner by id.
func (r *CampaignerRepository) FindByID(ctx context.Context, id int64) (*model.Campaigner, error) {
	defer observe(time.Now(), "select", "campaigner")
	query := `
        SELECT id, name, contact, email, profile_pic, is_flagged
        FROM campaigner
        WHERE id = $1
    `
	var c model.Campaigner
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Contact, &c.Email, &c.ProfilePic, &c.IsFlagged,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
