package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
)

type LoginRepository struct {
	db *pgxpool.Pool
}

func NewLoginRepository(db *pgxpool.Pool) *LoginRepository {
	return &LoginRepository{db: db}
}

// Create inserts a new login row.
func (r *LoginRepository) Create(ctx context.Context, l *model.Login) error {
	defer observe(time.Now(), "insert", "login")
	query := `
        INSERT INTO login (username, hash, profile_id, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query, l.Username, l.Hash, l.ProfileID, l.Role).Scan(&l.ID)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// FindByUsername returns the login row for a username.
func (r *LoginRepository) FindByUsername(ctx context.Context, username string) (*model.Login, error) {
	defer observe(time.Now(), "select", "login")
	query := `
        SELECT id, username, hash, profile_id, role
        FROM login
        WHERE username = $1
    `
	var l model.Login
	err := r.db.QueryRow(ctx, query, username).Scan(
		&l.ID, &l.Username, &l.Hash, &l.ProfileID, &l.Role,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
