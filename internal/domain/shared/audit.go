package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is an append-only record of a business action.
// Entries are never updated or deleted.
type AuditEntry struct {
	ID         uuid.UUID
	Action     string
	EntityType string
	EntityID   uuid.UUID
	ActorID    uuid.UUID
	Metadata   map[string]any
	CreatedAt  time.Time
}

// NewAuditEntry creates a new audit entry for a business action
func NewAuditEntry(action, entityType string, entityID, actorID uuid.UUID, metadata map[string]any) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Metadata:   metadata,
		CreatedAt:  time.Now(),
	}
}

// AuditRecorder is the sink for the append-only audit trail.
// Record is best-effort from the caller's point of view, but the GORM
// implementation joins the current transaction so audit rows cannot
// outlive a rolled back mutation.
type AuditRecorder interface {
	Record(ctx context.Context, entry *AuditEntry) error
}

// AuditReader provides read access to the audit trail
type AuditReader interface {
	FindByEntity(ctx context.Context, entityType string, entityID uuid.UUID, filter Filter) ([]AuditEntry, error)
	FindAll(ctx context.Context, filter Filter) ([]AuditEntry, error)
}
