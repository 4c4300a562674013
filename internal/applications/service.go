package applications

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobboard-platform/internal/audit"

	"github.com/google/uuid"
)

type Repository interface {
	Insert(ctx context.Context, a Application) error
	FindByID(ctx context.Context, id string) (Application, error)
	Update(ctx context.Context, a Application) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]Application, error)
	ListByJob(ctx context.Context, jobID string) ([]Application, error)
}

var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrInvalidTransition = errors.New("invalid status transition")
)

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

type CreateRequest struct {
	JobID          string `json:"job_id"`
	ApplicantName  string `json:"applicant_name"`
	ApplicantEmail string `json:"applicant_email"`
	ApplicantPhone string `json:"applicant_phone"`
	ResumeNote     string `json:"resume_note"`
}

type UpdateRequest struct {
	Status *Status `json:"status"`
	Notes  *string `json:"notes"`
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (Application, error) {
	if req.JobID == "" || req.ApplicantName == "" {
		return Application{}, ErrInvalidArgument
	}
	email := strings.ToLower(strings.TrimSpace(req.ApplicantEmail))
	if email == "" || !strings.Contains(email, "@") {
		return Application{}, ErrInvalidArgument
	}

	now := s.clock().UTC()
	a := Application{
		ID:             uuid.NewString(),
		JobID:          req.JobID,
		ApplicantName:  req.ApplicantName,
		ApplicantEmail: email,
		ApplicantPhone: req.ApplicantPhone,
		ResumeNote:     req.ResumeNote,
		Status:         StatusSubmitted,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, a); err != nil {
		return Application{}, err
	}
	return a, nil
}

// Update applies status/notes changes. Status moves must follow the pipeline;
// the returned change list carries true previous values for the audit recorder.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (Application, []audit.FieldChange, error) {
	if id == "" {
		return Application{}, nil, ErrInvalidArgument
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Application{}, nil, err
	}

	var changes []audit.FieldChange
	if req.Status != nil && *req.Status != a.Status {
		if !canTransition(a.Status, *req.Status) {
			return Application{}, nil, ErrInvalidTransition
		}
		changes = append(changes, audit.FieldChange{Field: "status", OldValue: string(a.Status), NewValue: string(*req.Status)})
		a.Status = *req.Status
	}
	if req.Notes != nil && *req.Notes != a.Notes {
		changes = append(changes, audit.FieldChange{Field: "notes", OldValue: a.Notes, NewValue: *req.Notes})
		a.Notes = *req.Notes
	}

	if len(changes) == 0 {
		return a, nil, nil
	}
	a.UpdatedAt = s.clock().UTC()
	if err := s.repo.Update(ctx, a); err != nil {
		return Application{}, nil, err
	}
	return a, changes, nil
}

func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	if id == "" {
		return Application{}, ErrInvalidArgument
	}
	return s.repo.FindByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Application, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByJob(ctx context.Context, jobID string) ([]Application, error) {
	if jobID == "" {
		return nil, ErrInvalidArgument
	}
	return s.repo.ListByJob(ctx, jobID)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidArgument
	}
	return s.repo.Delete(ctx, id)
}
