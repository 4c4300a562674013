package users

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repository for tests.

type MemoryRepo struct {
	mu    sync.Mutex
	byID  map[string]User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]User)}
}

func (r *MemoryRepo) Insert(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *MemoryRepo) FindByID(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	u.PasswordHash = ""
	return u, nil
}

func (r *MemoryRepo) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *MemoryRepo) Update(_ context.Context, u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.byID[u.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Name = u.Name
	existing.Role = u.Role
	existing.Active = u.Active
	existing.UpdatedAt = u.UpdatedAt
	r.byID[u.ID] = existing
	return nil
}

func (r *MemoryRepo) UpdatePassword(_ context.Context, id, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = hash
	r.byID[id] = u
	return nil
}

func (r *MemoryRepo) UpdatePermissions(_ context.Context, id string, m map[string]map[string]bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.Permissions = m
	r.byID[id] = u
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

func (r *MemoryRepo) List(_ context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		u.PasswordHash = ""
		out = append(out, u)
	}
	return out, nil
}
