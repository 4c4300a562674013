package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/identity"
	"jobboard-platform/internal/rbac"
	"jobboard-platform/pkg/utils"

	"github.com/google/uuid"
)

// Repository is the persistence contract for user documents.
type Repository interface {
	Insert(ctx context.Context, u User) error
	// FindByID returns the user without credential material.
	FindByID(ctx context.Context, id string) (User, error)
	// FindByEmail includes the password hash; reserved for credential flows.
	FindByEmail(ctx context.Context, email string) (User, error)
	Update(ctx context.Context, u User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	UpdatePermissions(ctx context.Context, id string, m map[string]map[string]bool) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]User, error)
}

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrBadCredentials  = errors.New("invalid email or password")
)

type Service struct {
	repo       Repository
	bcryptCost int
	clock      func() time.Time
}

func NewService(repo Repository, bcryptCost int) *Service {
	return &Service{repo: repo, bcryptCost: bcryptCost, clock: time.Now}
}

type CreateRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Active   *bool  `json:"active"`
}

type UpdateRequest struct {
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (User, error) {
	email := normalizeEmail(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return User{}, ErrInvalidArgument
	}
	if req.Name == "" || len(req.Password) < 8 {
		return User{}, ErrInvalidArgument
	}
	if !rbac.IsValidRole(req.Role) {
		return User{}, ErrInvalidArgument
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	hash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return User{}, err
	}

	now := s.clock().UTC()
	u := User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Active != nil {
		u.Active = *req.Active
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		return User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Update applies a partial update and reports the field-level changes with
// their true previous values, so callers can hand the audit recorder a real
// change list instead of the body-derived "N/A" one.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (User, []audit.FieldChange, error) {
	if id == "" {
		return User{}, nil, ErrInvalidArgument
	}
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, nil, err
	}

	var changes []audit.FieldChange
	if req.Name != nil && *req.Name != u.Name {
		if *req.Name == "" {
			return User{}, nil, ErrInvalidArgument
		}
		changes = append(changes, audit.FieldChange{Field: "name", OldValue: u.Name, NewValue: *req.Name})
		u.Name = *req.Name
	}
	if req.Role != nil && *req.Role != u.Role {
		if !rbac.IsValidRole(*req.Role) {
			return User{}, nil, ErrInvalidArgument
		}
		changes = append(changes, audit.FieldChange{Field: "role", OldValue: u.Role, NewValue: *req.Role})
		u.Role = *req.Role
	}
	if req.Active != nil && *req.Active != u.Active {
		changes = append(changes, audit.FieldChange{
			Field:    "active",
			OldValue: boolString(u.Active),
			NewValue: boolString(*req.Active),
		})
		u.Active = *req.Active
	}

	if len(changes) == 0 {
		return u, nil, nil
	}

	u.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, u); err != nil {
		return User{}, nil, err
	}
	return u, changes, nil
}

// UpdatePermissions persists a per-user override matrix. Role-level defaults
// stay constant; this is the only mutable permission surface.
func (s *Service) UpdatePermissions(ctx context.Context, id string, m map[string]map[string]bool) error {
	if id == "" {
		return ErrInvalidArgument
	}
	for resource, actions := range m {
		switch resource {
		case rbac.ResourceUsers, rbac.ResourceCompanies, rbac.ResourceJobs, rbac.ResourceApplications:
		default:
			return ErrInvalidArgument
		}
		for action := range actions {
			switch action {
			case rbac.ActionCreate, rbac.ActionRead, rbac.ActionUpdate, rbac.ActionDelete:
			default:
				return ErrInvalidArgument
			}
		}
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.UpdatePermissions(ctx, id, m)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	if id == "" {
		return User{}, ErrInvalidArgument
	}
	return s.repo.FindByID(ctx, id)
}

// GetByEmail returns the user without credential material.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return User{}, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}

// Authenticate verifies credentials for login. Disabled accounts fail the
// same way as wrong passwords.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, ErrNotFound) {
		return User{}, ErrBadCredentials
	}
	if err != nil {
		return User{}, err
	}
	if !u.Active || !utils.VerifyPassword(u.PasswordHash, password) {
		return User{}, ErrBadCredentials
	}
	u.PasswordHash = ""
	return u, nil
}

// ResetPassword sets a new password without knowing the old one. Callers must
// have verified a reset token first.
func (s *Service) ResetPassword(ctx context.Context, id, newPassword string) error {
	if id == "" || len(newPassword) < 8 {
		return ErrInvalidArgument
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// PrincipalByID implements identity.PrincipalSource.
func (s *Service) PrincipalByID(ctx context.Context, id string) (identity.Principal, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return identity.Principal{}, err
	}
	if !u.Active {
		return identity.Principal{}, identity.ErrAccountDisabled
	}
	return identity.Principal{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Active:    u.Active,
		Overrides: u.Permissions,
	}, nil
}

// SeedAdmin creates the bootstrap admin account if it does not exist.
// Idempotent; safe to run on every startup.
func (s *Service) SeedAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return ErrInvalidArgument
	}
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password, s.bcryptCost)
	if err != nil {
		return err
	}
	now := s.clock().UTC()
	return s.repo.Insert(ctx, User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         "Administrator",
		PasswordHash: hash,
		Role:         rbac.RoleAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
