package identity

import (
	"testing"
	"time"

	"jobboard-platform/internal/config"
)

func TestIssueAndVerify(t *testing.T) {
	m, err := NewManager(config.AuthConfig{
		JWTSecret:      "secret",
		JWTIssuer:      "issuer",
		JWTAudience:    "aud",
		AccessTokenTTL: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.Issue(now, "user-1", "recruiter")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if tok == "" {
		t.Fatalf("expected token string")
	}

	claims, err := m.Verify(tok, now.Add(1*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "user-1" || claims.Role != "recruiter" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute})
	now := time.Unix(1700000000, 0).UTC()
	tok, err := m.Issue(now, "u", "viewer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// Past TTL plus verification leeway.
	if _, err := m.Verify(tok, now.Add(5*time.Minute)); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a, _ := NewManager(config.AuthConfig{JWTSecret: "secret-a", AccessTokenTTL: time.Minute})
	b, _ := NewManager(config.AuthConfig{JWTSecret: "secret-b", AccessTokenTTL: time.Minute})

	tok, err := a.Issue(time.Now(), "u", "viewer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := b.Verify(tok, time.Now()); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestVerifyEnforcesIssuerAndAudience(t *testing.T) {
	issuerA, _ := NewManager(config.AuthConfig{JWTSecret: "secret", JWTIssuer: "svc-a", AccessTokenTTL: time.Minute})
	issuerB, _ := NewManager(config.AuthConfig{JWTSecret: "secret", JWTIssuer: "svc-b", AccessTokenTTL: time.Minute})

	now := time.Unix(1700000000, 0).UTC()
	tok, err := issuerA.Issue(now, "u", "viewer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuerB.Verify(tok, now); err == nil {
		t.Fatalf("expected issuer mismatch error")
	}

	audA, _ := NewManager(config.AuthConfig{JWTSecret: "secret", JWTAudience: "aud-a", AccessTokenTTL: time.Minute})
	audB, _ := NewManager(config.AuthConfig{JWTSecret: "secret", JWTAudience: "aud-b", AccessTokenTTL: time.Minute})

	tok, err = audA.Issue(now, "u", "viewer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := audB.Verify(tok, now); err == nil {
		t.Fatalf("expected audience mismatch error")
	}
}

func TestIssueRequiresSubjectAndRole(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute})
	if _, err := m.Issue(time.Now(), "", "viewer"); err == nil {
		t.Fatalf("expected error for empty user id")
	}
	if _, err := m.Issue(time.Now(), "u", ""); err == nil {
		t.Fatalf("expected error for empty role")
	}
}
