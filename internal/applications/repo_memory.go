package applications

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests.

type MemoryRepo struct {
	mu   sync.Mutex
	byID map[string]Application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Application)}
}

func (r *MemoryRepo) Insert(_ context.Context, a Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
	return nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return a, nil
}

func (r *MemoryRepo) Update(_ context.Context, a Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *MemoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *MemoryRepo) List(_ context.Context) ([]Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Application, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}

func (r *MemoryRepo) ListByJob(_ context.Context, jobID string) ([]Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Application
	for _, a := range r.byID {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}
