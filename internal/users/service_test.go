package users

import (
	"context"
	"errors"
	"testing"

	"jobboard-platform/internal/identity"
	"jobboard-platform/internal/rbac"
)

func newTestService() (*Service, *MemoryRepo) {
	repo := NewMemoryRepo()
	// Low bcrypt cost keeps the suite fast; production cost comes from config.
	return NewService(repo, 4), repo
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{
		Email:    "  Jane@Example.COM ",
		Name:     "Jane Doe",
		Password: "hunter2hunter2",
		Role:     rbac.RoleHRManager,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatal("Create returned credential material")
	}
	if !u.Active {
		t.Fatal("new users should default to active")
	}

	got, err := svc.Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.PasswordHash != "" {
		t.Fatal("Get returned credential material")
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing email", CreateRequest{Name: "X", Password: "12345678", Role: rbac.RoleViewer}},
		{"not an email", CreateRequest{Email: "nope", Name: "X", Password: "12345678", Role: rbac.RoleViewer}},
		{"short password", CreateRequest{Email: "a@b.c", Name: "X", Password: "short", Role: rbac.RoleViewer}},
		{"unknown role", CreateRequest{Email: "a@b.c", Name: "X", Password: "12345678", Role: "superuser"}},
		{"missing name", CreateRequest{Email: "a@b.c", Password: "12345678", Role: rbac.RoleViewer}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("want ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	req := CreateRequest{Email: "dup@example.com", Name: "A", Password: "12345678", Role: rbac.RoleViewer}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	req.Name = "B"
	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{
		Email: "login@example.com", Name: "L", Password: "correct-horse", Role: rbac.RoleRecruiter,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := svc.Authenticate(ctx, "login@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("wrong user: %q", got.ID)
	}
	if got.PasswordHash != "" {
		t.Fatal("Authenticate returned credential material")
	}

	if _, err := svc.Authenticate(ctx, "login@example.com", "wrong"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("wrong password: want ErrBadCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost@example.com", "correct-horse"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("unknown email: want ErrBadCredentials, got %v", err)
	}
}

func TestAuthenticateDisabledLooksLikeBadCredentials(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	inactive := false
	_, err := svc.Create(ctx, CreateRequest{
		Email: "off@example.com", Name: "Off", Password: "correct-horse",
		Role: rbac.RoleViewer, Active: &inactive,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "off@example.com", "correct-horse"); !errors.Is(err, ErrBadCredentials) {
		t.Fatalf("disabled account: want ErrBadCredentials, got %v", err)
	}
}

func TestUpdateReportsTrueOldValues(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{
		Email: "u@example.com", Name: "Before", Password: "12345678", Role: rbac.RoleViewer,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	name := "After"
	role := rbac.RoleRecruiter
	updated, changes, err := svc.Update(ctx, u.ID, UpdateRequest{Name: &name, Role: &role})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "After" || updated.Role != rbac.RoleRecruiter {
		t.Fatalf("update not applied: %+v", updated)
	}
	if len(changes) != 2 {
		t.Fatalf("want 2 changes, got %d", len(changes))
	}
	if changes[0].Field != "name" || changes[0].OldValue != "Before" || changes[0].NewValue != "After" {
		t.Fatalf("name change: %+v", changes[0])
	}
	if changes[1].Field != "role" || changes[1].OldValue != rbac.RoleViewer {
		t.Fatalf("role change: %+v", changes[1])
	}

	// No-op update produces no changes and no write.
	same := "After"
	_, changes, err = svc.Update(ctx, u.ID, UpdateRequest{Name: &same})
	if err != nil {
		t.Fatalf("no-op Update: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("no-op should report no changes, got %+v", changes)
	}
}

func TestUpdatePermissionsValidatesKeys(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{
		Email: "p@example.com", Name: "P", Password: "12345678", Role: rbac.RoleViewer,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	ok := map[string]map[string]bool{
		rbac.ResourceJobs: {rbac.ActionCreate: true, rbac.ActionDelete: false},
	}
	if err := svc.UpdatePermissions(ctx, u.ID, ok); err != nil {
		t.Fatalf("valid matrix rejected: %v", err)
	}

	badResource := map[string]map[string]bool{"payroll": {rbac.ActionRead: true}}
	if err := svc.UpdatePermissions(ctx, u.ID, badResource); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad resource: want ErrInvalidArgument, got %v", err)
	}
	badAction := map[string]map[string]bool{rbac.ResourceJobs: {"approve": true}}
	if err := svc.UpdatePermissions(ctx, u.ID, badAction); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("bad action: want ErrInvalidArgument, got %v", err)
	}
	if err := svc.UpdatePermissions(ctx, "missing", ok); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user: want ErrNotFound, got %v", err)
	}
}

func TestPrincipalByID(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{
		Email: "pr@example.com", Name: "Pr", Password: "12345678", Role: rbac.RoleRecruiter,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	overrides := map[string]map[string]bool{rbac.ResourceJobs: {rbac.ActionDelete: true}}
	if err := svc.UpdatePermissions(ctx, u.ID, overrides); err != nil {
		t.Fatalf("UpdatePermissions: %v", err)
	}

	p, err := svc.PrincipalByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("PrincipalByID: %v", err)
	}
	if p.Role != rbac.RoleRecruiter || p.Email != "pr@example.com" {
		t.Fatalf("principal fields: %+v", p)
	}
	if !p.Overrides[rbac.ResourceJobs][rbac.ActionDelete] {
		t.Fatal("overrides not carried onto principal")
	}

	active := false
	if _, _, err := svc.Update(ctx, u.ID, UpdateRequest{Active: &active}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.PrincipalByID(ctx, u.ID); !errors.Is(err, identity.ErrAccountDisabled) {
		t.Fatalf("disabled user: want ErrAccountDisabled, got %v", err)
	}
}

func TestSeedAdminIdempotent(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	if err := svc.SeedAdmin(ctx, "Admin@Example.com", "bootstrap-secret"); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	if err := svc.SeedAdmin(ctx, "admin@example.com", "different-password"); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("want exactly one admin, got %d users", len(list))
	}
	if list[0].Role != rbac.RoleAdmin || list[0].Email != "admin@example.com" {
		t.Fatalf("seeded admin: %+v", list[0])
	}

	// The original password still works; the second call must not overwrite.
	if _, err := svc.Authenticate(ctx, "admin@example.com", "bootstrap-secret"); err != nil {
		t.Fatalf("admin login after reseed: %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, CreateRequest{
		Email: "rp@example.com", Name: "RP", Password: "old-password", Role: rbac.RoleViewer,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.ResetPassword(ctx, u.ID, "short"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("short password: want ErrInvalidArgument, got %v", err)
	}
	if err := svc.ResetPassword(ctx, u.ID, "new-password"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "rp@example.com", "old-password"); !errors.Is(err, ErrBadCredentials) {
		t.Fatal("old password still accepted after reset")
	}
	if _, err := svc.Authenticate(ctx, "rp@example.com", "new-password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
