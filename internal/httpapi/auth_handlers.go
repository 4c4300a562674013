package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/identity"
	"jobboard-platform/internal/rbac"
	"jobboard-platform/internal/users"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login validates credentials and issues an access token.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Email and password are required.")
		return
	}

	u, err := h.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, users.ErrBadCredentials) {
		respondError(c, http.StatusUnauthorized, "Invalid email or password.")
		return
	}
	if err != nil {
		h.logger().Error("login failed", "err", err)
		respondError(c, http.StatusInternalServerError, "Login failed.")
		return
	}

	token, err := h.Auth.Issue(time.Now(), u.ID, u.Role)
	if err != nil {
		h.logger().Error("token issuance failed", "err", err)
		respondError(c, http.StatusInternalServerError, "Login failed.")
		return
	}

	// Login happens before any principal exists, so the recorder middleware
	// cannot see it; record it here with the same best-effort contract.
	h.recordAuthEvent(c, u, audit.ActionLogin, "signed in")

	respondData(c, http.StatusOK, gin.H{"token": token, "user": u})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a reset token for a known account. The response is
// identical whether or not the account exists, so the endpoint cannot be
// used to enumerate emails.
func (h Handlers) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respondError(c, http.StatusBadRequest, "Email is required.")
		return
	}

	u, err := h.Users.GetByEmail(c.Request.Context(), req.Email)
	if err == nil && u.Active {
		token, issueErr := h.Tokens.Issue(c.Request.Context(), u.ID, h.ResetTTL)
		if issueErr != nil {
			h.logger().Error("reset token issuance failed", "err", issueErr)
		} else {
			// Mail delivery is out of scope; operators read this from logs
			// in non-production environments.
			h.logger().Debug("reset token issued", "user_id", u.ID, "token", token)
		}
	} else if err != nil && !errors.Is(err, users.ErrNotFound) {
		h.logger().Error("forgot password lookup failed", "err", err)
	}

	respondMessage(c, http.StatusOK, "If the account exists, a password reset has been issued.")
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword consumes a single-use reset token and sets a new password.
func (h Handlers) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "Token and password are required.")
		return
	}

	userID, err := h.Tokens.Consume(c.Request.Context(), req.Token)
	if errors.Is(err, identity.ErrResetTokenInvalid) {
		respondError(c, http.StatusBadRequest, "Invalid or expired reset token.")
		return
	}
	if err != nil {
		h.logger().Error("reset token consume failed", "err", err)
		respondError(c, http.StatusInternalServerError, "Password reset failed.")
		return
	}

	if err := h.Users.ResetPassword(c.Request.Context(), userID, req.Password); err != nil {
		if errors.Is(err, users.ErrInvalidArgument) {
			respondError(c, http.StatusBadRequest, "Password must be at least 8 characters.")
			return
		}
		h.logger().Error("password reset failed", "user_id", userID, "err", err)
		respondError(c, http.StatusInternalServerError, "Password reset failed.")
		return
	}

	respondMessage(c, http.StatusOK, "Password has been reset.")
}

// Logout exists for audit symmetry; access tokens are stateless and simply
// expire. The recorder middleware on this route writes the logout entry.
func (h Handlers) Logout(c *gin.Context) {
	respondMessage(c, http.StatusOK, "Signed out.")
}

// Me returns the authenticated principal.
func (h Handlers) Me(c *gin.Context) {
	p, ok := identity.PrincipalFrom(c.Request.Context())
	if !ok {
		respondError(c, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"id":     p.ID,
		"email":  p.Email,
		"name":   p.Name,
		"role":   p.Role,
		"active": p.Active,
	})
}

func (h Handlers) recordAuthEvent(c *gin.Context, u users.User, action, details string) {
	if h.Audit == nil {
		return
	}
	e := audit.Entry{
		ActorID:    u.ID,
		ActorEmail: u.Email,
		ActorName:  u.Name,
		Action:     action,
		Resource:   rbac.ResourceUsers,
		ResourceID: u.ID,
		Details:    details,
		IPAddress:  c.ClientIP(),
		UserAgent:  c.Request.UserAgent(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.Audit.Append(ctx, e); err != nil {
			h.logger().Error("audit write failed", "action", action, "err", err)
		}
	}()
}
