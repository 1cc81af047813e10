package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	periodapp "github.com/importdesk/backend/internal/application/period"
)

// PeriodHandler handles financial period API endpoints
type PeriodHandler struct {
	BaseHandler
	periods *periodapp.Service
}

// NewPeriodHandler creates a new PeriodHandler
func NewPeriodHandler(periods *periodapp.Service) *PeriodHandler {
	return &PeriodHandler{periods: periods}
}

// UnlockPeriodRequest reopens a locked period; the reason lands in the
// audit trail.
type UnlockPeriodRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// Current returns the period owning today's date, creating it on first
// touch.
func (h *PeriodHandler) Current(c *gin.Context) {
	period, err := h.periods.Current(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, period)
}

// GetByID returns one period
func (h *PeriodHandler) GetByID(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	period, err := h.periods.Get(c.Request.Context(), periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, period)
}

// List returns periods, newest first
func (h *PeriodHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c, "status")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	periods, err := h.periods.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, periods)
}

// Checklist reports what still blocks locking the period
func (h *PeriodHandler) Checklist(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	checklist, err := h.periods.Checklist(c.Request.Context(), periodID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, checklist)
}

// Lock closes the period after the closure checklist passes
func (h *PeriodHandler) Lock(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	period, err := h.periods.Lock(c.Request.Context(), periodID, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, period)
}

// Unlock reopens a locked period with a mandatory reason
func (h *PeriodHandler) Unlock(c *gin.Context) {
	periodID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid period ID format")
		return
	}

	var req UnlockPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	period, err := h.periods.Unlock(c.Request.Context(), periodID, req.Reason, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, period)
}
