package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-hub/internal/audit"
	"github.com/BruksfildServices01/barber-hub/internal/httperr"
	"github.com/BruksfildServices01/barber-hub/internal/httpresp"
	"github.com/BruksfildServices01/barber-hub/internal/timezone"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
	maxAuditPage      = 10000
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs *audit.Logger
}

func NewAuditLogsHandler(logs *audit.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// GET /api/me/audit-logs?action=&entity=&from=&to=&page=&limit=
//
// from and to are calendar days (UTC); to is inclusive. Malformed dates
// are ignored.
func (h *AuditLogsHandler) List(c *gin.Context) {
	f := audit.Filter{
		BarbershopID: barbershopIDFrom(c),
		Action:       c.Query("action"),
		Entity:       c.Query("entity"),
		Page:         1,
		Limit:        defaultAuditLimit,
	}

	if page, _ := strconv.Atoi(c.Query("page")); page > 0 {
		f.Page = min(page, maxAuditPage)
	}
	if limit, _ := strconv.Atoi(c.Query("limit")); limit > 0 && limit <= maxAuditLimit {
		f.Limit = limit
	}

	// --------------------------------------------------
	// Optional date window
	// --------------------------------------------------

	if _, from, err := timezone.ParseDate(c.Query("from")); err == nil {
		f.From = &from
	}
	if _, to, err := timezone.ParseDate(c.Query("to")); err == nil {
		end := to.Add(24 * time.Hour)
		f.To = &end
	}

	page, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	httpresp.OK(c, page)
}
