package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard-platform/internal/audit"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, j Job) error
	FindByID(ctx context.Context, id string) (Job, error)
	Update(ctx context.Context, j Job) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Job, error)
}

var (
	ErrNotFound        = errors.New("job not found")
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
	Title        string   `json:"title"`
	CompanyID    string   `json:"company_id"`
	Location     string   `json:"location"`
	Type         JobType  `json:"type"`
	SalaryMin    int64    `json:"salary_min"`
	SalaryMax    int64    `json:"salary_max"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Status       JobStatus `json:"status"`
}

type UpdateRequest struct {
	Title        *string    `json:"title"`
	Location     *string    `json:"location"`
	Type         *JobType   `json:"type"`
	SalaryMin    *int64     `json:"salary_min"`
	SalaryMax    *int64     `json:"salary_max"`
	Description  *string    `json:"description"`
	Requirements *[]string  `json:"requirements"`
	Status       *JobStatus `json:"status"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Job, error) {
	if req.Title == "" || req.CompanyID == "" {
		return Job{}, ErrInvalidArgument
	}
	if !isValidType(req.Type) {
		return Job{}, ErrInvalidArgument
	}
	if req.Status == "" {
		req.Status = JobStatusDraft
	}
	if !isValidStatus(req.Status) {
		return Job{}, ErrInvalidArgument
	}
	if req.SalaryMin < 0 || req.SalaryMax < 0 || (req.SalaryMax > 0 && req.SalaryMin > req.SalaryMax) {
		return Job{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	j := Job{
		ID:           uuid.NewString(),
		Title:        req.Title,
		CompanyID:    req.CompanyID,
		Location:     req.Location,
		Type:         req.Type,
		SalaryMin:    req.SalaryMin,
		SalaryMax:    req.SalaryMax,
		Description:  req.Description,
		Requirements: req.Requirements,
		Status:       req.Status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, j); err != nil {
		return Job{}, err
	}
	return j, nil
}

// Update applies a partial update and reports field-level changes with true
// previous values for the audit recorder.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Job, []audit.FieldChange, error) {
	if id == "" {
		return Job{}, nil, ErrInvalidArgument
	}
	j, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Job{}, nil, err
	}

	var changes []audit.FieldChange
	if req.Title != nil && *req.Title != j.Title {
		if *req.Title == "" {
			return Job{}, nil, ErrInvalidArgument
		}
		changes = append(changes, audit.FieldChange{Field: "title", OldValue: j.Title, NewValue: *req.Title})
		j.Title = *req.Title
	}
	if req.Location != nil && *req.Location != j.Location {
		changes = append(changes, audit.FieldChange{Field: "location", OldValue: j.Location, NewValue: *req.Location})
		j.Location = *req.Location
	}
	if req.Type != nil && *req.Type != j.Type {
		if !isValidType(*req.Type) {
			return Job{}, nil, ErrInvalidArgument
		}
		changes = append(changes, audit.FieldChange{Field: "type", OldValue: string(j.Type), NewValue: string(*req.Type)})
		j.Type = *req.Type
	}
	if req.SalaryMin != nil && *req.SalaryMin != j.SalaryMin {
		changes = append(changes, audit.FieldChange{Field: "salary_min", OldValue: fmt.Sprintf("%d", j.SalaryMin), NewValue: fmt.Sprintf("%d", *req.SalaryMin)})
		j.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMax != nil && *req.SalaryMax != j.SalaryMax {
		changes = append(changes, audit.FieldChange{Field: "salary_max", OldValue: fmt.Sprintf("%d", j.SalaryMax), NewValue: fmt.Sprintf("%d", *req.SalaryMax)})
		j.SalaryMax = *req.SalaryMax
	}
	if req.Description != nil && *req.Description != j.Description {
		changes = append(changes, audit.FieldChange{Field: "description", OldValue: j.Description, NewValue: *req.Description})
		j.Description = *req.Description
	}
	if req.Requirements != nil {
		old := strings.Join(j.Requirements, ", ")
		nw := strings.Join(*req.Requirements, ", ")
		if old != nw {
			changes = append(changes, audit.FieldChange{Field: "requirements", OldValue: old, NewValue: nw})
			j.Requirements = *req.Requirements
		}
	}
	if req.Status != nil && *req.Status != j.Status {
		if !isValidStatus(*req.Status) {
			return Job{}, nil, ErrInvalidArgument
		}
		changes = append(changes, audit.FieldChange{Field: "status", OldValue: string(j.Status), NewValue: string(*req.Status)})
		j.Status = *req.Status
	}
	if j.SalaryMin < 0 || (j.SalaryMax > 0 && j.SalaryMin > j.SalaryMax) {
		return Job{}, nil, ErrInvalidArgument
	}

	if len(changes) == 0 {
		return j, nil, nil
	}
	j.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, j); err != nil {
		return Job{}, nil, err
	}
	return j, changes, nil
}

func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	if id == "" {
		return Job{}, ErrInvalidArgument
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Job, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}
