package httpapi

import (
	"errors"
	"net/http"

	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/users"

	"github.com/gin-gonic/gin"
)

func userError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, users.ErrNotFound):
		respondError(c, http.StatusNotFound, "User not found.")
	case errors.Is(err, users.ErrEmailTaken):
		respondError(c, http.StatusConflict, "Email already in use.")
	case errors.Is(err, users.ErrInvalidArgument):
		respondError(c, http.StatusBadRequest, "Invalid user data.")
	default:
		respondError(c, http.StatusInternalServerError, "Operation failed.")
	}
}

func (h Handlers) ListUsers(c *gin.Context) {
	list, err := h.Users.List(c.Request.Context())
	if err != nil {
		h.logger().Error("list users failed", "err", err)
		userError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h Handlers) GetUser(c *gin.Context) {
	u, err := h.Users.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		userError(c, err)
		return
	}
	respondData(c, http.StatusOK, u)
}

func (h Handlers) CreateUser(c *gin.Context) {
	var req users.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	u, err := h.Users.Create(c.Request.Context(), req)
	if err != nil {
		userError(c, err)
		return
	}
	audit.SetResourceName(c, u.Name)
	respondData(c, http.StatusCreated, u)
}

func (h Handlers) UpdateUser(c *gin.Context) {
	var req users.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	u, changes, err := h.Users.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		userError(c, err)
		return
	}
	audit.SetChanges(c, changes)
	audit.SetResourceName(c, u.Name)
	respondData(c, http.StatusOK, u)
}

// UpdateUserPermissions replaces a user's permission override matrix.
// Admin-gated in routes; role defaults themselves are immutable.
func (h Handlers) UpdateUserPermissions(c *gin.Context) {
	var req struct {
		Permissions map[string]map[string]bool `json:"permissions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	id := c.Param("id")
	if err := h.Users.UpdatePermissions(c.Request.Context(), id, req.Permissions); err != nil {
		userError(c, err)
		return
	}
	audit.SetDetails(c, "permission overrides replaced")
	respondMessage(c, http.StatusOK, "Permissions updated.")
}

func (h Handlers) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	// Pre-read so the audit entry can carry the display name of what is
	// about to disappear.
	if u, err := h.Users.Get(c.Request.Context(), id); err == nil {
		audit.SetResourceName(c, u.Name)
	}
	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		userError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "User deleted.")
}
