package httpapi

import (
	"errors"
	"net/http"

	"jobboard-platform/internal/audit"
	"jobboard-platform/internal/companies"

	"github.com/gin-gonic/gin"
)

func companyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, companies.ErrNotFound):
		respondError(c, http.StatusNotFound, "Company not found.")
	case errors.Is(err, companies.ErrInvalidArgument):
		respondError(c, http.StatusBadRequest, "Invalid company data.")
	default:
		respondError(c, http.StatusInternalServerError, "Operation failed.")
	}
}

func (h Handlers) ListCompanies(c *gin.Context) {
	list, err := h.Companies.List(c.Request.Context())
	if err != nil {
		h.logger().Error("list companies failed", "err", err)
		companyError(c, err)
		return
	}
	respondData(c, http.StatusOK, list)
}

func (h Handlers) GetCompany(c *gin.Context) {
	co, err := h.Companies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		companyError(c, err)
		return
	}
	respondData(c, http.StatusOK, co)
}

func (h Handlers) CreateCompany(c *gin.Context) {
	var req companies.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	co, err := h.Companies.Create(c.Request.Context(), req)
	if err != nil {
		companyError(c, err)
		return
	}
	respondData(c, http.StatusCreated, co)
}

func (h Handlers) UpdateCompany(c *gin.Context) {
	var req companies.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	co, changes, err := h.Companies.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		companyError(c, err)
		return
	}
	audit.SetChanges(c, changes)
	audit.SetResourceName(c, co.Name)
	respondData(c, http.StatusOK, co)
}

func (h Handlers) DeleteCompany(c *gin.Context) {
	id := c.Param("id")
	if co, err := h.Companies.Get(c.Request.Context(), id); err == nil {
		audit.SetResourceName(c, co.Name)
	}
	if err := h.Companies.Delete(c.Request.Context(), id); err != nil {
		companyError(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Company deleted.")
}
