package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/importdesk/backend/internal/domain/period"
)

// FinancialPeriodModel is the persistence model for the FinancialPeriod aggregate.
type FinancialPeriodModel struct {
	AggregateModel
	Year         int                 `gorm:"not null;uniqueIndex:idx_period_year_month,priority:1"`
	Month        int                 `gorm:"not null;uniqueIndex:idx_period_year_month,priority:2"`
	Status       period.PeriodStatus `gorm:"type:varchar(20);not null;default:'OPEN';index"`
	LockedAt     *time.Time
	LockedBy     *uuid.UUID `gorm:"type:uuid"`
	UnlockedAt   *time.Time
	UnlockedBy   *uuid.UUID `gorm:"type:uuid"`
	UnlockReason string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (FinancialPeriodModel) TableName() string {
	return "financial_periods"
}

// ToDomain converts the persistence model to a domain FinancialPeriod.
func (m *FinancialPeriodModel) ToDomain() *period.FinancialPeriod {
	p := &period.FinancialPeriod{
		Year:         m.Year,
		Month:        time.Month(m.Month),
		Status:       m.Status,
		LockedAt:     m.LockedAt,
		LockedBy:     m.LockedBy,
		UnlockedAt:   m.UnlockedAt,
		UnlockedBy:   m.UnlockedBy,
		UnlockReason: m.UnlockReason,
	}
	m.PopulateAggregateRoot(&p.BaseAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain FinancialPeriod.
func (m *FinancialPeriodModel) FromDomain(p *period.FinancialPeriod) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Year = p.Year
	m.Month = int(p.Month)
	m.Status = p.Status
	m.LockedAt = p.LockedAt
	m.LockedBy = p.LockedBy
	m.UnlockedAt = p.UnlockedAt
	m.UnlockedBy = p.UnlockedBy
	m.UnlockReason = p.UnlockReason
}

// FinancialPeriodModelFromDomain creates a persistence model from a domain period.
func FinancialPeriodModelFromDomain(p *period.FinancialPeriod) *FinancialPeriodModel {
	m := &FinancialPeriodModel{}
	m.FromDomain(p)
	return m
}
