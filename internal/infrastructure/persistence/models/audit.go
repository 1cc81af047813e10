package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/importdesk/backend/internal/domain/shared"
)

// AuditEntryModel is the persistence model for the append-only audit
// trail. Rows are inserted and read, never updated or deleted.
type AuditEntryModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	Action     string    `gorm:"type:varchar(100);not null;index"`
	EntityType string    `gorm:"type:varchar(100);not null;index:idx_audit_entity,priority:1"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_audit_entity,priority:2"`
	ActorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Metadata   string    `gorm:"type:jsonb"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (AuditEntryModel) TableName() string {
	return "audit_entries"
}

// ToDomain converts the persistence model to a domain AuditEntry.
func (m *AuditEntryModel) ToDomain() (*shared.AuditEntry, error) {
	var metadata map[string]any
	if m.Metadata != "" {
		if err := json.Unmarshal([]byte(m.Metadata), &metadata); err != nil {
			return nil, err
		}
	}
	return &shared.AuditEntry{
		ID:         m.ID,
		Action:     m.Action,
		EntityType: m.EntityType,
		EntityID:   m.EntityID,
		ActorID:    m.ActorID,
		Metadata:   metadata,
		CreatedAt:  m.CreatedAt,
	}, nil
}

// AuditEntryModelFromDomain creates a persistence model from a domain
// AuditEntry.
func AuditEntryModelFromDomain(e *shared.AuditEntry) (*AuditEntryModel, error) {
	metadata := ""
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = string(raw)
	}
	return &AuditEntryModel{
		ID:         e.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		ActorID:    e.ActorID,
		Metadata:   metadata,
		CreatedAt:  e.CreatedAt,
	}, nil
}

// DocumentSequenceModel backs the per-prefix document number counters.
// NextValue is read under a row lock and advanced in the same
// transaction as the numbered document.
type DocumentSequenceModel struct {
	Prefix    string    `gorm:"type:varchar(20);primary_key"`
	NextValue int64     `gorm:"not null;default:1"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentSequenceModel) TableName() string {
	return "document_sequences"
}
