package period

import (
	"time"

	"github.com/importdesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeFinancialPeriod = "FinancialPeriod"

// Event type constants
const (
	EventTypePeriodOpened   = "FinancialPeriodOpened"
	EventTypePeriodLocked   = "FinancialPeriodLocked"
	EventTypePeriodUnlocked = "FinancialPeriodUnlocked"
)

// PeriodOpenedEvent is raised when a new financial period is created
type PeriodOpenedEvent struct {
	shared.BaseDomainEvent
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewPeriodOpenedEvent creates a new PeriodOpenedEvent
func NewPeriodOpenedEvent(p *FinancialPeriod) *PeriodOpenedEvent {
	return &PeriodOpenedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodOpened, AggregateTypeFinancialPeriod, p.ID),
		Year:            p.Year,
		Month:           p.Month,
	}
}

// EventType returns the event type name
func (e *PeriodOpenedEvent) EventType() string {
	return EventTypePeriodOpened
}

// PeriodLockedEvent is raised when a period passes the closure checklist
// and is locked against further money-affecting mutations
type PeriodLockedEvent struct {
	shared.BaseDomainEvent
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// NewPeriodLockedEvent creates a new PeriodLockedEvent
func NewPeriodLockedEvent(p *FinancialPeriod) *PeriodLockedEvent {
	return &PeriodLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodLocked, AggregateTypeFinancialPeriod, p.ID),
		Year:            p.Year,
		Month:           p.Month,
	}
}

// EventType returns the event type name
func (e *PeriodLockedEvent) EventType() string {
	return EventTypePeriodLocked
}

// PeriodUnlockedEvent is raised when a locked period is explicitly
// reopened. The reason is mandatory and retained for audit.
type PeriodUnlockedEvent struct {
	shared.BaseDomainEvent
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Reason string     `json:"reason"`
}

// NewPeriodUnlockedEvent creates a new PeriodUnlockedEvent
func NewPeriodUnlockedEvent(p *FinancialPeriod, reason string) *PeriodUnlockedEvent {
	return &PeriodUnlockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePeriodUnlocked, AggregateTypeFinancialPeriod, p.ID),
		Year:            p.Year,
		Month:           p.Month,
		Reason:          reason,
	}
}

// EventType returns the event type name
func (e *PeriodUnlockedEvent) EventType() string {
	return EventTypePeriodUnlocked
}
