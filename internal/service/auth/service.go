package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/domain"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/repository"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/util"
)

type LoginStore interface {
	Create(ctx context.Context, l *model.Login) error
	FindByUsername(ctx context.Context, username string) (*model.Login, error)
}

type VolunteerStore interface {
	Create(ctx context.Context, v *model.Volunteer) error
	FindByID(ctx context.Context, id int64) (*model.Volunteer, error)
}

type CampaignerStore interface {
	Create(ctx context.Context, c *model.Campaigner) error
	FindByID(ctx context.Context, id int64) (*model.Campaigner, error)
}

// Limiter throttles login attempts. util.Limiter satisfies it.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

type Service struct {
	logins      LoginStore
	volunteers  VolunteerStore
	campaigners CampaignerStore
	limiter     Limiter
	jwtSecret   string
}

func NewService(logins LoginStore, volunteers VolunteerStore, campaigners CampaignerStore, limiter Limiter, jwtSecret string) *Service {
	return &Service{
		logins:      logins,
		volunteers:  volunteers,
		campaigners: campaigners,
		limiter:     limiter,
		jwtSecret:   jwtSecret,
	}
}

// Session is the payload returned by login and register.
type Session struct {
	Token string `json:"session_id"`
	Role  string `json:"role"`
}

type RegisterInput struct {
	Username string
	Password string
	Role     string
	Name     string
	Contact  string
	Email    string
	Image    string
}

// Register creates a role-specific profile plus its login row and signs the
// caller in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	if in.Role != model.RoleVolunteer && in.Role != model.RoleCampaigner {
		return nil, domain.E(domain.KindValidation, "Invalid role")
	}

	existing, err := s.logins.FindByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.E(domain.KindConflict, "User already exists")
	}

	hash, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	var profileID int64
	switch in.Role {
	case model.RoleVolunteer:
		v := &model.Volunteer{Name: in.Name, Contact: in.Contact, Email: in.Email, ProfilePic: in.Image}
		if err := s.volunteers.Create(ctx, v); err != nil {
			return nil, err
		}
		profileID = v.ID
	case model.RoleCampaigner:
		c := &model.Campaigner{Name: in.Name, Contact: in.Contact, Email: in.Email, ProfilePic: in.Image}
		if err := s.campaigners.Create(ctx, c); err != nil {
			return nil, err
		}
		profileID = c.ID
	}

	l := &model.Login{Username: in.Username, Hash: hash, ProfileID: profileID, Role: in.Role}
	if err := s.logins.Create(ctx, l); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, domain.E(domain.KindConflict, "User already exists")
		}
		return nil, err
	}

	token, err := util.GenerateJWT(in.Username, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Role: in.Role}, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	if s.limiter != nil && !s.limiter.Allow(ctx, username) {
		return nil, domain.E(domain.KindRateLimited, "Too many login attempts")
	}

	l, err := s.logins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "User not found")
		}
		return nil, err
	}

	if !util.CheckPassword(password, l.Hash) {
		return nil, domain.E(domain.KindInvalidCredentials, "Invalid credentials")
	}

	token, err := util.GenerateJWT(username, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, Role: l.Role}, nil
}

// Authenticate resolves a bearer token to its login row.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.Login, error) {
	if token == "" {
		return nil, domain.E(domain.KindUnauthenticated, "No token provided")
	}

	username, err := util.ParseJWT(token, s.jwtSecret)
	if err != nil {
		return nil, domain.E(domain.KindUnauthenticated, "Invalid token")
	}

	l, err := s.logins.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "User not found")
		}
		return nil, err
	}
	return l, nil
}

// ResolveVolunteer loads the volunteer profile behind a login. Fails with a
// role mismatch for campaigner logins and NotFound if the profile row is
// missing.
func (s *Service) ResolveVolunteer(ctx context.Context, l *model.Login) (*model.Volunteer, error) {
	if l.Role != model.RoleVolunteer {
		return nil, domain.E(domain.KindRoleMismatch, "Invalid role")
	}
	v, err := s.volunteers.FindByID(ctx, l.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "Profile not found")
		}
		return nil, err
	}
	return v, nil
}

// ResolveCampaigner is the campaigner counterpart of ResolveVolunteer.
func (s *Service) ResolveCampaigner(ctx context.Context, l *model.Login) (*model.Campaigner, error) {
	if l.Role != model.RoleCampaigner {
		return nil, domain.E(domain.KindRoleMismatch, "Invalid role")
	}
	c, err := s.campaigners.FindByID(ctx, l.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "Profile not found")
		}
		return nil, err
	}
	return c, nil
}
