package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"jobboard-platform/internal/audit"

	"github.com/gin-gonic/gin"
)

const defaultAuditListLimit = 100

// ListAuditLogs returns recent entries, newest first. Admin-gated in routes.
func (h Handlers) ListAuditLogs(c *gin.Context) {
	limit := int64(defaultAuditListLimit)
	if v := c.Query("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			respondError(c, http.StatusBadRequest, "limit must be a positive integer.")
			return
		}
		limit = n
	}

	entries, err := h.Audit.List(c.Request.Context(), limit)
	if err != nil {
		h.logger().Error("list audit logs failed", "err", err)
		respondError(c, http.StatusInternalServerError, "Operation failed.")
		return
	}
	respondData(c, http.StatusOK, entries)
}

// ExportAuditLogsCSV streams the audit log as a CSV attachment.
// Field order and quoting are a stable contract; see audit.WriteCSV.
func (h Handlers) ExportAuditLogsCSV(c *gin.Context) {
	entries, err := h.Audit.List(c.Request.Context(), 0)
	if err != nil {
		h.logger().Error("audit export failed", "err", err)
		respondError(c, http.StatusInternalServerError, "Operation failed.")
		return
	}

	filename := "audit-logs-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	if err := audit.WriteCSV(c.Writer, entries); err != nil {
		// Headers are gone already; log and stop.
		h.logger().Error("audit csv write failed", "err", err)
	}
}
