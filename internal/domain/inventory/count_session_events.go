package inventory

import (
	"github.com/importdesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeCountSession = "CountSession"

// Event type constants
const (
	EventTypeCountSubmitted = "InventoryCountSubmitted"
	EventTypeCountConfirmed = "InventoryCountConfirmed"
	EventTypeCountResolved  = "InventoryCountResolved"
)

// CountSubmittedEvent is raised when a count snapshot is taken
type CountSubmittedEvent struct {
	shared.BaseDomainEvent
	Status          string `json:"status"`
	LineCount       int    `json:"line_count"`
	DifferenceCount int    `json:"difference_count"`
}

// NewCountSubmittedEvent creates a new CountSubmittedEvent
func NewCountSubmittedEvent(s *CountSession) *CountSubmittedEvent {
	return &CountSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCountSubmitted, AggregateTypeCountSession, s.ID),
		Status:          s.Status.String(),
		LineCount:       len(s.Items),
		DifferenceCount: s.DifferenceCount(),
	}
}

// EventType returns the event type name
func (e *CountSubmittedEvent) EventType() string {
	return EventTypeCountSubmitted
}

// CountConfirmedEvent is raised when a pending session's code is
// redeemed
type CountConfirmedEvent struct {
	shared.BaseDomainEvent
}

// NewCountConfirmedEvent creates a new CountConfirmedEvent
func NewCountConfirmedEvent(s *CountSession) *CountConfirmedEvent {
	return &CountConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCountConfirmed, AggregateTypeCountSession, s.ID),
	}
}

// EventType returns the event type name
func (e *CountConfirmedEvent) EventType() string {
	return EventTypeCountConfirmed
}

// CountResolvedEvent is raised when a discrepancy session is reopened
// after the stock has been corrected
type CountResolvedEvent struct {
	shared.BaseDomainEvent
}

// NewCountResolvedEvent creates a new CountResolvedEvent
func NewCountResolvedEvent(s *CountSession) *CountResolvedEvent {
	return &CountResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCountResolved, AggregateTypeCountSession, s.ID),
	}
}

// EventType returns the event type name
func (e *CountResolvedEvent) EventType() string {
	return EventTypeCountResolved
}
