package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Repository is the persistence contract for audit entries.
//
// It MUST be append-only toward writers.
// No Update/Delete methods are provided by design.

type Repository interface {
	Append(ctx context.Context, e Entry) error
	List(ctx context.Context, limit int64) ([]Entry, error)
}

// Service validates and stores audit entries.
//
// IMPORTANT:
// - Callers should treat audit logging as best-effort; the Recorder enforces
//   that contract on the HTTP path.

type Service struct {
	repo  Repository
	clock func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

var ErrInvalidEntry = errors.New("audit: invalid entry")

func (s *Service) Append(ctx context.Context, e Entry) error {
	if s.repo == nil {
		return errors.New("audit: repository not configured")
	}
	if e.ActorID == "" {
		return ErrInvalidEntry
	}
	if e.Action == "" || e.Resource == "" {
		return ErrInvalidEntry
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.clock().UTC()
	}
	return s.repo.Append(ctx, e)
}

func (s *Service) List(ctx context.Context, limit int64) ([]Entry, error) {
	if s.repo == nil {
		return nil, errors.New("audit: repository not configured")
	}
	return s.repo.List(ctx, limit)
}
