package companies

import (
	"context"
	"errors"
	"time"

	"jobboard-platform/internal/audit"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, c Company) error
	FindByID(ctx context.Context, id string) (Company, error)
	Update(ctx context.Context, c Company) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Company, error)
}

var (
	ErrNotFound        = errors.New("company not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateRequest struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

type UpdateRequest struct {
	Name        *string `json:"name"`
	Industry    *string `json:"industry"`
	Location    *string `json:"location"`
	Website     *string `json:"website"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Company, error) {
	if req.Name == "" {
		return Company{}, ErrInvalidArgument
	}
	now := s.clock().UTC()
	c := Company{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Industry:    req.Industry,
		Location:    req.Location,
		Website:     req.Website,
		Description: req.Description,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return Company{}, err
	}
	return c, nil
}

// Update applies a partial update and reports field-level changes with true
// previous values for the audit recorder.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Company, []audit.FieldChange, error) {
	if id == "" {
		return Company{}, nil, ErrInvalidArgument
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Company{}, nil, err
	}

	var changes []audit.FieldChange
	apply := func(field string, dst *string, v *string) error {
		if v == nil || *v == *dst {
			return nil
		}
		if field == "name" && *v == "" {
			return ErrInvalidArgument
		}
		changes = append(changes, audit.FieldChange{Field: field, OldValue: *dst, NewValue: *v})
		*dst = *v
		return nil
	}

	if err := apply("name", &c.Name, req.Name); err != nil {
		return Company{}, nil, err
	}
	_ = apply("industry", &c.Industry, req.Industry)
	_ = apply("location", &c.Location, req.Location)
	_ = apply("website", &c.Website, req.Website)
	_ = apply("description", &c.Description, req.Description)
	if req.Active != nil && *req.Active != c.Active {
		old := "false"
		if c.Active {
			old = "true"
		}
		nw := "false"
		if *req.Active {
			nw = "true"
		}
		changes = append(changes, audit.FieldChange{Field: "active", OldValue: old, NewValue: nw})
		c.Active = *req.Active
	}

	if len(changes) == 0 {
		return c, nil, nil
	}
	c.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, c); err != nil {
		return Company{}, nil, err
	}
	return c, changes, nil
}

func (s *Service) Get(ctx context.Context, id string) (Company, error) {
	if id == "" {
		return Company{}, ErrInvalidArgument
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}
