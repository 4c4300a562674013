package companies

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests.

type MemoryRepo struct {
	mu   sync.Mutex
	byID map[string]Company
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Company)}
}

func (r *MemoryRepo) Insert(_ context.Context, c Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[c.ID] = c
	return nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return Company{}, ErrNotFound
	}
	return c, nil
}

func (r *MemoryRepo) Update(_ context.Context, c Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[c.ID]; !ok {
		return ErrNotFound
	}
	r.byID[c.ID] = c
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

func (r *MemoryRepo) List(_ context.Context) ([]Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Company, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, c)
	}
	return out, nil
}
