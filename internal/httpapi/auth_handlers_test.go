package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/config"
	"jobboard-platform/internal/identity"
	"jobboard-platform/internal/rbac"
	"jobboard-platform/internal/users"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	handlers Handlers
	users    *users.Service
	router   *gin.Engine
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	manager, err := identity.NewManager(config.AuthConfig{
		JWTSecret:      "test-secret-test-secret",
		AccessTokenTTL: 15 * time.Minute,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	userService := users.NewService(users.NewMemoryRepo(), 4)
	h := Handlers{
		Auth:     manager,
		Tokens:   identity.NewMemoryTokenStore(),
		ResetTTL: 30 * time.Minute,

		Users: userService,
		Audit: audit.NewService(audit.NewMemoryRepo()),
		Log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/forgot-password", h.ForgotPassword)
	r.POST("/auth/reset-password", h.ResetPassword)

	return testEnv{handlers: h, users: userService, router: r}
}

func (e testEnv) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func seedUser(t *testing.T, e testEnv, email, password string) users.User {
	t.Helper()
	u, err := e.users.Create(context.Background(), users.CreateRequest{
		Email:    email,
		Name:     "Test User",
		Password: password,
		Role:     rbac.RoleRecruiter,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLoginSuccess(t *testing.T) {
	e := newTestEnv(t)
	seedUser(t, e, "login@example.com", "correct-horse")

	w := e.post(t, "/auth/login", gin.H{"email": "login@example.com", "password": "correct-horse"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	env := decodeEnvelope(t, w)
	if env["success"] != true {
		t.Fatalf("success = %v", env["success"])
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("data missing: %v", env)
	}
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("no token in response")
	}

	// The issued token must verify and carry the user's role.
	claims, err := e.handlers.Auth.Verify(token, time.Now())
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Role != rbac.RoleRecruiter {
		t.Fatalf("token role = %q", claims.Role)
	}

	user, ok := data["user"].(map[string]any)
	if !ok {
		t.Fatalf("user missing: %v", data)
	}
	if _, leaked := user["password"]; leaked {
		t.Fatal("password material leaked in login response")
	}
}

func TestLoginFailures(t *testing.T) {
	e := newTestEnv(t)
	seedUser(t, e, "login@example.com", "correct-horse")

	cases := []struct {
		name string
		body gin.H
		want int
	}{
		{"wrong password", gin.H{"email": "login@example.com", "password": "wrong"}, http.StatusUnauthorized},
		{"unknown email", gin.H{"email": "ghost@example.com", "password": "correct-horse"}, http.StatusUnauthorized},
		{"missing password", gin.H{"email": "login@example.com"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.post(t, "/auth/login", tc.body)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
			env := decodeEnvelope(t, w)
			if env["success"] != false {
				t.Fatalf("success = %v", env["success"])
			}
		})
	}
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	e := newTestEnv(t)
	seedUser(t, e, "real@example.com", "correct-horse")

	known := e.post(t, "/auth/forgot-password", gin.H{"email": "real@example.com"})
	unknown := e.post(t, "/auth/forgot-password", gin.H{"email": "ghost@example.com"})

	if known.Code != http.StatusOK || unknown.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d; both should be 200", known.Code, unknown.Code)
	}
	if known.Body.String() != unknown.Body.String() {
		t.Fatalf("responses differ:\n%s\n%s", known.Body.String(), unknown.Body.String())
	}
}

func TestResetPasswordFlow(t *testing.T) {
	e := newTestEnv(t)
	u := seedUser(t, e, "reset@example.com", "old-password")

	token, err := e.handlers.Tokens.Issue(context.Background(), u.ID, time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	w := e.post(t, "/auth/reset-password", gin.H{"token": token, "password": "new-password"})
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d, body = %s", w.Code, w.Body.String())
	}

	if _, err := e.users.Authenticate(context.Background(), "reset@example.com", "new-password"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	// Tokens are single use.
	again := e.post(t, "/auth/reset-password", gin.H{"token": token, "password": "another-pass"})
	if again.Code != http.StatusBadRequest {
		t.Fatalf("reused token status = %d, want 400", again.Code)
	}
}

func TestResetPasswordRejectsBadToken(t *testing.T) {
	e := newTestEnv(t)

	w := e.post(t, "/auth/reset-password", gin.H{"token": "bogus", "password": "new-password"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	env := decodeEnvelope(t, w)
	if env["message"] != "Invalid or expired reset token." {
		t.Fatalf("message = %v", env["message"])
	}
}
