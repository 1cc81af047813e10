package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/inventory"
)

// CountSessionModel is the persistence model for the CountSession
// aggregate.
type CountSessionModel struct {
	AggregateModel
	Status      inventory.SessionStatus `gorm:"type:varchar(20);not null;index"`
	Code        *string                 `gorm:"type:varchar(10);index"`
	CountedBy   uuid.UUID               `gorm:"type:uuid;not null"`
	CountedAt   time.Time               `gorm:"not null"`
	ConfirmedBy *uuid.UUID              `gorm:"type:uuid"`
	ConfirmedAt *time.Time

	Items []CountSessionItemModel `gorm:"foreignKey:SessionID"`
}

// TableName returns the table name for GORM
func (CountSessionModel) TableName() string {
	return "count_sessions"
}

// CountSessionItemModel is the persistence model for a frozen count
// line.
type CountSessionItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	SessionID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContainerID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	SystemQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ActualQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Difference     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CountSessionItemModel) TableName() string {
	return "count_session_items"
}

// ToDomain converts the persistence model to a domain CountSession.
func (m *CountSessionModel) ToDomain() *inventory.CountSession {
	s := &inventory.CountSession{
		Status:      m.Status,
		Code:        m.Code,
		CountedBy:   m.CountedBy,
		CountedAt:   m.CountedAt,
		ConfirmedBy: m.ConfirmedBy,
		ConfirmedAt: m.ConfirmedAt,
		Items:       make([]inventory.CountSessionItem, 0, len(m.Items)),
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)

	for i := range m.Items {
		item := &m.Items[i]
		s.Items = append(s.Items, inventory.CountSessionItem{
			ID:             item.ID,
			SessionID:      item.SessionID,
			ContainerID:    item.ContainerID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			SystemQuantity: item.SystemQuantity,
			ActualQuantity: item.ActualQuantity,
			Difference:     item.Difference,
			CreatedAt:      item.CreatedAt,
		})
	}
	return s
}

// FromDomain populates the persistence model from a domain CountSession.
func (m *CountSessionModel) FromDomain(s *inventory.CountSession) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Status = s.Status
	m.Code = s.Code
	m.CountedBy = s.CountedBy
	m.CountedAt = s.CountedAt
	m.ConfirmedBy = s.ConfirmedBy
	m.ConfirmedAt = s.ConfirmedAt

	m.Items = make([]CountSessionItemModel, 0, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		m.Items = append(m.Items, CountSessionItemModel{
			ID:             item.ID,
			SessionID:      s.ID,
			ContainerID:    item.ContainerID,
			ProductID:      item.ProductID,
			ProductName:    item.ProductName,
			SystemQuantity: item.SystemQuantity,
			ActualQuantity: item.ActualQuantity,
			Difference:     item.Difference,
			CreatedAt:      item.CreatedAt,
		})
	}
}

// CountSessionModelFromDomain creates a persistence model from a domain
// CountSession.
func CountSessionModelFromDomain(s *inventory.CountSession) *CountSessionModel {
	m := &CountSessionModel{}
	m.FromDomain(s)
	return m
}
