package jobs

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests.

type MemoryRepo struct {
	mu   sync.Mutex
	byID map[string]Job
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Job)}
}

func (r *MemoryRepo) Insert(_ context.Context, j Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[j.ID] = j
	return nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.byID[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return j, nil
}

func (r *MemoryRepo) Update(_ context.Context, j Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[j.ID]; !ok {
		return ErrNotFound
	}
	r.byID[j.ID] = j
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

func (r *MemoryRepo) List(_ context.Context) ([]Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Job, 0, len(r.byID))
	for _, j := range r.byID {
		out = append(out, j)
	}
	return out, nil
}
