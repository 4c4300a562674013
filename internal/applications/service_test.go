package applications

import (
	"context"
	"errors"
	"testing"
)

func seedApplication(t *testing.T, svc *Service) Application {
	t.Helper()
	a, err := svc.Create(context.Background(), CreateRequest{
		JobID:          "job-1",
		ApplicantName:  "Sam Lee",
		ApplicantEmail: "sam@example.com",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return a
}

func setStatus(t *testing.T, svc *Service, id string, to Status) error {
	t.Helper()
	_, _, err := svc.Update(context.Background(), id, UpdateRequest{Status: &to})
	return err
}

func TestCreateDefaultsToSubmitted(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	a := seedApplication(t, svc)
	if a.Status != StatusSubmitted {
		t.Fatalf("new application status = %q, want %q", a.Status, StatusSubmitted)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name string
		req  CreateRequest
	}{
		{"missing job", CreateRequest{ApplicantName: "S", ApplicantEmail: "s@x.y"}},
		{"missing name", CreateRequest{JobID: "j", ApplicantEmail: "s@x.y"}},
		{"bad email", CreateRequest{JobID: "j", ApplicantName: "S", ApplicantEmail: "not-an-email"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.req); !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("want ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestStatusPipeline(t *testing.T) {
	allowed := []struct {
		from, to Status
	}{
		{StatusSubmitted, StatusShortlisted},
		{StatusSubmitted, StatusRejected},
		{StatusShortlisted, StatusHired},
		{StatusShortlisted, StatusRejected},
	}
	for _, tc := range allowed {
		if !canTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be allowed", tc.from, tc.to)
		}
	}

	denied := []struct {
		from, to Status
	}{
		{StatusSubmitted, StatusHired},
		{StatusShortlisted, StatusSubmitted},
		{StatusHired, StatusRejected},
		{StatusHired, StatusSubmitted},
		{StatusRejected, StatusShortlisted},
		{StatusRejected, StatusHired},
	}
	for _, tc := range denied {
		if canTransition(tc.from, tc.to) {
			t.Errorf("%s -> %s should be denied", tc.from, tc.to)
		}
	}
}

func TestUpdateRejectsInvalidTransition(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	a := seedApplication(t, svc)

	if err := setStatus(t, svc, a.ID, StatusHired); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("submitted -> hired: want ErrInvalidTransition, got %v", err)
	}

	if err := setStatus(t, svc, a.ID, StatusShortlisted); err != nil {
		t.Fatalf("submitted -> shortlisted: %v", err)
	}
	if err := setStatus(t, svc, a.ID, StatusHired); err != nil {
		t.Fatalf("shortlisted -> hired: %v", err)
	}

	// hired is terminal
	if err := setStatus(t, svc, a.ID, StatusRejected); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("hired -> rejected: want ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateReportsStatusChange(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	a := seedApplication(t, svc)

	to := StatusShortlisted
	notes := "strong phone screen"
	updated, changes, err := svc.Update(context.Background(), a.ID, UpdateRequest{Status: &to, Notes: &notes})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != StatusShortlisted || updated.Notes != notes {
		t.Fatalf("update not applied: %+v", updated)
	}
	if len(changes) != 2 {
		t.Fatalf("want 2 changes, got %d", len(changes))
	}
	if changes[0].Field != "status" || changes[0].OldValue != "submitted" || changes[0].NewValue != "shortlisted" {
		t.Fatalf("status change: %+v", changes[0])
	}
	if changes[1].Field != "notes" || changes[1].OldValue != "" {
		t.Fatalf("notes change: %+v", changes[1])
	}
}

func TestListByJob(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	for i, jobID := range []string{"job-a", "job-a", "job-b"} {
		_, err := svc.Create(ctx, CreateRequest{
			JobID:          jobID,
			ApplicantName:  "Candidate",
			ApplicantEmail: "c@example.com",
		})
		if err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	got, err := svc.ListByJob(ctx, "job-a")
	if err != nil {
		t.Fatalf("ListByJob: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 applications for job-a, got %d", len(got))
	}
	if _, err := svc.ListByJob(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty job id: want ErrInvalidArgument, got %v", err)
	}
}
