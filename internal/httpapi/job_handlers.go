package httpapi

import (
	"errors"
	"net/http"

	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/jobs"

	"github.com/gin-gonic/gin"
)

func jobError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, jobs.ErrNotFound):
		respondError(c, http.StatusNotFound, "Job not found.")
	case errors.Is(err, jobs.ErrInvalidArgument):
		respondError(c, http.StatusBadRequest, "Invalid job data.")
	default:
		respondError(c, http.StatusInternalServerError, "Operation failed.")
	}
}

func (h Handlers) ListJobs(c *gin.Context) {
	list, err := h.Jobs.List(c.Request.Context())
	if err != nil {
		h.logger().Error("list jobs failed", "err", err)
		jobError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h Handlers) GetJob(c *gin.Context) {
	j, err := h.Jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		jobError(c, err)
		return
	}
	respondData(c, http.StatusOK, j)
}

func (h Handlers) CreateJob(c *gin.Context) {
	var req jobs.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	j, err := h.Jobs.Create(c.Request.Context(), req)
	if err != nil {
		jobError(c, err)
		return
	}
	respondData(c, http.StatusCreated, j)
}

func (h Handlers) UpdateJob(c *gin.Context) {
	var req jobs.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	j, changes, err := h.Jobs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		jobError(c, err)
		return
	}
	audit.SetChanges(c, changes)
	audit.SetResourceName(c, j.Title)
	respondData(c, http.StatusOK, j)
}

func (h Handlers) DeleteJob(c *gin.Context) {
	id := c.Param("id")
	if j, err := h.Jobs.Get(c.Request.Context(), id); err == nil {
		audit.SetResourceName(c, j.Title)
	}
	if err := h.Jobs.Delete(c.Request.Context(), id); err != nil {
		jobError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Job deleted.")
}
