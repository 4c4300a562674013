package httpapi

import (
	"errors"
	"net/http"

	"jobboard-platform/internal/applications"
	"jobboard-platform/internal/audit"

	"github.com/gin-gonic/gin"
)

func applicationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, applications.ErrNotFound):
		respondError(c, http.StatusNotFound, "Application not found.")
	case errors.Is(err, applications.ErrInvalidTransition):
		respondError(c, http.StatusBadRequest, "Invalid status transition.")
	case errors.Is(err, applications.ErrInvalidArgument):
		respondError(c, http.StatusBadRequest, "Invalid application data.")
	default:
		respondError(c, http.StatusInternalServerError, "Operation failed.")
	}
}

func (h Handlers) ListApplications(c *gin.Context) {
	ctx := c.Request.Context()
	var (
		list []applications.Application
		err  error
	)
	if jobID := c.Query("job_id"); jobID != "" {
		list, err = h.Applications.ListByJob(ctx, jobID)
	} else {
		list, err = h.Applications.List(ctx)
	}
	if err != nil {
		h.logger().Error("list applications failed", "err", err)
		applicationError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h Handlers) GetApplication(c *gin.Context) {
	a, err := h.Applications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		applicationError(c, err)
		return
	}
	respondData(c, http.StatusOK, a)
}

func (h Handlers) CreateApplication(c *gin.Context) {
	var req applications.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	a, err := h.Applications.Create(c.Request.Context(), req)
	if err != nil {
		applicationError(c, err)
		return
	}
	audit.SetResourceName(c, a.ApplicantName)
	respondData(c, http.StatusCreated, a)
}

func (h Handlers) UpdateApplication(c *gin.Context) {
	var req applications.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	a, changes, err := h.Applications.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		applicationError(c, err)
		return
	}
	audit.SetChanges(c, changes)
	audit.SetResourceName(c, a.ApplicantName)
	respondData(c, http.StatusOK, a)
}

func (h Handlers) DeleteApplication(c *gin.Context) {
	id := c.Param("id")
	if a, err := h.Applications.Get(c.Request.Context(), id); err == nil {
		audit.SetResourceName(c, a.ApplicantName)
	}
	if err := h.Applications.Delete(c.Request.Context(), id); err != nil {
		applicationError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Application deleted.")
}
