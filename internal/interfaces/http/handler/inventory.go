package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/importdesk/backend/internal/application/inventory"
)

// InventoryHandler handles stock count session API endpoints
type InventoryHandler struct {
	BaseHandler
	counts *inventoryapp.CountService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(counts *inventoryapp.CountService) *InventoryHandler {
	return &InventoryHandler{counts: counts}
}

// Submit records a full stock count. A clean count returns the
// confirmation code; a discrepant one comes back flagged.
func (h *InventoryHandler) Submit(c *gin.Context) {
	var req inventoryapp.SubmitCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.counts.Submit(c.Request.Context(), req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// Confirm redeems a session's confirmation code
func (h *InventoryHandler) Confirm(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	var req inventoryapp.ConfirmCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.counts.Confirm(c.Request.Context(), sessionID, req, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// Resolve reopens a discrepancy session after the stock was corrected
func (h *InventoryHandler) Resolve(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	session, err := h.counts.Resolve(c.Request.Context(), sessionID, actor)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// GetByID returns one count session with its lines
func (h *InventoryHandler) GetByID(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid session ID format")
		return
	}

	session, err := h.counts.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, session)
}

// List returns count sessions, newest first
func (h *InventoryHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c, "status")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sessions, err := h.counts.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sessions)
}
