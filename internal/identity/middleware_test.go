package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"jobboard-platform/internal/config"

	"github.com/gin-gonic/gin"
)

type stubSource struct {
	principals map[string]Principal
	err        error
}

func (s stubSource) PrincipalByID(_ context.Context, id string) (Principal, error) {
	if s.err != nil {
		return Principal{}, s.err
	}
	p, ok := s.principals[id]
	if !ok {
		return Principal{}, ErrAccountDisabled
	}
	return p, nil
}

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: 15 * time.Minute})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}

func serveWithAuth(t *testing.T, m *Manager, src PrincipalSource, header string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", RequireAuth(m, src), func(c *gin.Context) {
		p, _ := PrincipalFrom(c.Request.Context())
		c.JSON(200, gin.H{"id": p.ID, "role": p.Role})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	m := newTestManager(t)
	w := serveWithAuth(t, m, stubSource{}, "")
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No token provided") {
		t.Fatalf("expected missing-token message, got %s", w.Body.String())
	}
}

func TestRequireAuth_GarbledToken(t *testing.T) {
	m := newTestManager(t)
	w := serveWithAuth(t, m, stubSource{}, "Bearer not-a-jwt")
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid or expired token") {
		t.Fatalf("expected generic message, got %s", w.Body.String())
	}
}

func TestRequireAuth_DisabledAccountIsGeneric401(t *testing.T) {
	m := newTestManager(t)
	tok, err := m.Issue(time.Now(), "user-1", "viewer")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Source knows no principals, so resolution fails with ErrAccountDisabled.
	w := serveWithAuth(t, m, stubSource{}, "Bearer "+tok)
	if w.Code != 401 {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	// The body must not reveal that the account exists but is disabled.
	if strings.Contains(strings.ToLower(w.Body.String()), "disabled") {
		t.Fatalf("response leaks account state: %s", w.Body.String())
	}
}

func TestRequireAuth_AttachesPrincipal(t *testing.T) {
	m := newTestManager(t)
	tok, err := m.Issue(time.Now(), "user-1", "hr_manager")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	src := stubSource{principals: map[string]Principal{
		"user-1": {ID: "user-1", Email: "hr@example.com", Role: "hr_manager", Active: true},
	}}
	w := serveWithAuth(t, m, src, "Bearer "+tok)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "hr_manager") {
		t.Fatalf("expected principal role in body, got %s", w.Body.String())
	}
}
