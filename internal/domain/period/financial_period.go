package period

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/importdesk/backend/internal/domain/shared"
)

// PeriodStatus represents the status of a financial period
type PeriodStatus string

const (
	PeriodStatusOpen   PeriodStatus = "OPEN"
	PeriodStatusLocked PeriodStatus = "LOCKED"
)

// IsValid checks if the status is a valid PeriodStatus
func (s PeriodStatus) IsValid() bool {
	switch s {
	case PeriodStatusOpen, PeriodStatusLocked:
		return true
	}
	return false
}

// String returns the string representation of PeriodStatus
func (s PeriodStatus) String() string {
	return string(s)
}

// FinancialPeriod represents one calendar month acting as an accounting
// lock boundary. Every money-affecting mutation must verify the owning
// period is OPEN before writing. Periods are never deleted.
type FinancialPeriod struct {
	shared.BaseAggregateRoot
	Year         int
	Month        time.Month
	Status       PeriodStatus
	LockedAt     *time.Time
	LockedBy     *uuid.UUID
	UnlockedAt   *time.Time
	UnlockedBy   *uuid.UUID
	UnlockReason string
}

// NewFinancialPeriod creates a new OPEN financial period for (year, month)
func NewFinancialPeriod(year int, month time.Month) (*FinancialPeriod, error) {
	if year < 2000 || year > 2200 {
		return nil, shared.NewDomainError("INVALID_YEAR", "Year is out of the supported range")
	}
	if month < time.January || month > time.December {
		return nil, shared.NewDomainError("INVALID_MONTH", "Month must be between 1 and 12")
	}

	p := &FinancialPeriod{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Year:              year,
		Month:             month,
		Status:            PeriodStatusOpen,
	}

	p.AddDomainEvent(NewPeriodOpenedEvent(p))

	return p, nil
}

// PeriodOf returns the (year, month) pair owning the given date
func PeriodOf(date time.Time) (int, time.Month) {
	return date.Year(), date.Month()
}

// IsOpen returns true if the period accepts money-affecting mutations
func (p *FinancialPeriod) IsOpen() bool {
	return p.Status == PeriodStatusOpen
}

// IsLocked returns true if the period has been closed
func (p *FinancialPeriod) IsLocked() bool {
	return p.Status == PeriodStatusLocked
}

// Contains reports whether the given date falls inside this period
func (p *FinancialPeriod) Contains(date time.Time) bool {
	return date.Year() == p.Year && date.Month() == p.Month
}

// Start returns the first instant of the period (UTC)
func (p *FinancialPeriod) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first instant of the following period (UTC)
func (p *FinancialPeriod) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

// Label returns a human-readable period label such as "2026-09"
func (p *FinancialPeriod) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Lock closes the period. The closure checklist must have passed: a
// period with outstanding debt, unconfirmed corrections, negative
// container profit, or an unfinished inventory count cannot be locked.
func (p *FinancialPeriod) Lock(by uuid.UUID, checklist ClosureChecklist) error {
	if p.IsLocked() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Period %s is already locked", p.Label()))
	}
	if blockers := checklist.Blockers(); len(blockers) > 0 {
		return NewClosureBlockedError(p.Label(), blockers)
	}

	now := time.Now()
	p.Status = PeriodStatusLocked
	p.LockedAt = &now
	p.LockedBy = &by
	p.UpdatedAt = now

	p.AddDomainEvent(NewPeriodLockedEvent(p))

	return nil
}

// Unlock reopens a locked period. A non-empty reason is mandatory and is
// retained for audit.
func (p *FinancialPeriod) Unlock(by uuid.UUID, reason string) error {
	if !p.IsLocked() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Period %s is not locked", p.Label()))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Unlock reason is required")
	}

	now := time.Now()
	p.Status = PeriodStatusOpen
	p.LockedAt = nil
	p.LockedBy = nil
	p.UnlockedAt = &now
	p.UnlockedBy = &by
	p.UnlockReason = reason
	p.UpdatedAt = now

	p.AddDomainEvent(NewPeriodUnlockedEvent(p, reason))

	return nil
}
