package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestMemoryTokenStore_SingleUse(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()

	tok, err := s.Issue(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	uid, err := s.Consume(ctx, tok)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if uid != "user-1" {
		t.Fatalf("expected user-1, got %q", uid)
	}

	if _, err := s.Consume(ctx, tok); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected invalid on second consume, got %v", err)
	}
}

func TestMemoryTokenStore_TokensAreIndependent(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()

	first, err := s.Issue(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	second, err := s.Issue(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := s.Consume(ctx, first); err != nil {
		t.Fatalf("consume first: %v", err)
	}
	// The second token must remain valid after the first is used.
	if uid, err := s.Consume(ctx, second); err != nil || uid != "user-1" {
		t.Fatalf("expected second token valid, got uid=%q err=%v", uid, err)
	}
}

func TestMemoryTokenStore_ExpiredConsumeDeletesEntry(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()

	now := time.Unix(1700000000, 0).UTC()
	s.clock = func() time.Time { return now }

	tok, err := s.Issue(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	s.clock = func() time.Time { return now.Add(2 * time.Minute) }
	if _, err := s.Consume(ctx, tok); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected invalid for expired token, got %v", err)
	}
	// Repeated attempts stay invalid; the stale entry is gone.
	if _, err := s.Consume(ctx, tok); !errors.Is(err, ErrResetTokenInvalid) {
		t.Fatalf("expected invalid on retry, got %v", err)
	}
	if len(s.entries) != 0 {
		t.Fatalf("expected stale entry purged, have %d", len(s.entries))
	}
}

func TestMemoryTokenStore_ConcurrentConsumeHasOneWinner(t *testing.T) {
	s := NewMemoryTokenStore()
	ctx := context.Background()

	tok, err := s.Issue(ctx, "user-1", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	const attempts = 16
	var wg sync.WaitGroup
	results := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = s.Consume(ctx, tok)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else if !errors.Is(err, ErrResetTokenInvalid) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}
