package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/importdesk/backend/internal/domain/shared"
)

// AuditHandler exposes the append-only audit trail
type AuditHandler struct {
	BaseHandler
	audits shared.AuditReader
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(audits shared.AuditReader) *AuditHandler {
	return &AuditHandler{audits: audits}
}

// AuditEntryResponse is the API view of one audit entry
type AuditEntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	ActorID    uuid.UUID      `json:"actor_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func toAuditResponses(entries []shared.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		out = append(out, AuditEntryResponse{
			ID:         e.ID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			ActorID:    e.ActorID,
			Metadata:   e.Metadata,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out
}

// List returns audit entries, newest first
func (h *AuditHandler) List(c *gin.Context) {
	filter, err := bindListFilter(c, "action", "actor_id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.audits.FindAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAuditResponses(entries))
}

// ListByEntity returns the audit history of one entity
func (h *AuditHandler) ListByEntity(c *gin.Context) {
	entityType := c.Param("entityType")
	if entityType == "" {
		h.BadRequest(c, "Entity type is required")
		return
	}

	entityID, err := uuid.Parse(c.Param("entityId"))
	if err != nil {
		h.BadRequest(c, "Invalid entity ID format")
		return
	}

	filter, err := bindListFilter(c, "action")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	entries, err := h.audits.FindByEntity(c.Request.Context(), entityType, entityID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toAuditResponses(entries))
}
