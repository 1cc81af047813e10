package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/importdesk/backend/internal/application/report"
)

// defaultDebtorLimit caps the receivables view when the client does
// not ask for a specific size.
const defaultDebtorLimit = 20

// ReportHandler handles dashboard and reporting API endpoints
type ReportHandler struct {
	BaseHandler
	reports *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Dashboard returns the landing summary for the period owning the
// given date (today when absent).
func (h *ReportHandler) Dashboard(c *gin.Context) {
	var at time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		at = parsed
	}

	summary, err := h.reports.Dashboard(c.Request.Context(), at)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ContainerFinancials returns the per-container settlement projection
func (h *ReportHandler) ContainerFinancials(c *gin.Context) {
	containerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid container ID format")
		return
	}

	view, err := h.reports.ContainerFinancials(c.Request.Context(), containerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Debtors returns the receivables view, largest debt first
func (h *ReportHandler) Debtors(c *gin.Context) {
	limit := defaultDebtorLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	debtors, err := h.reports.Debtors(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debtors)
}

// SalesByClient aggregates a period's sales per client
func (h *ReportHandler) SalesByClient(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	rows, err := h.reports.SalesByClient(c.Request.Context(), periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// MonthlyTrend returns the rolling twelve month revenue, expense and
// margin series ending at the given month (current month when absent).
func (h *ReportHandler) MonthlyTrend(c *gin.Context) {
	var until time.Time
	if raw := c.Query("until"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			h.BadRequest(c, "Invalid month, expected YYYY-MM")
			return
		}
		until = parsed
	}

	rows, err := h.reports.MonthlyTrend(c.Request.Context(), until)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
