package container

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeContainer = "Container"

// Event type constants
const (
	EventTypeContainerCreated = "ContainerCreated"
	EventTypeContainerArrived = "ContainerArrived"
	EventTypeContainerClosed  = "ContainerClosed"
	EventTypeExpenseAdded     = "ContainerExpenseAdded"
	EventTypeInvestmentAdded  = "ContainerInvestmentAdded"
	EventTypePayoutRecorded   = "InvestorPayoutRecorded"
)

// ContainerCreatedEvent is raised when a new shipment is registered
type ContainerCreatedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewContainerCreatedEvent creates a new ContainerCreatedEvent
func NewContainerCreatedEvent(containerID uuid.UUID, number string) *ContainerCreatedEvent {
	return &ContainerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContainerCreated, AggregateTypeContainer, containerID),
		Number:          number,
	}
}

// EventType returns the event type name
func (e *ContainerCreatedEvent) EventType() string {
	return EventTypeContainerCreated
}

// ContainerArrivedEvent is raised when a shipment lands and its stock
// becomes sellable
type ContainerArrivedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewContainerArrivedEvent creates a new ContainerArrivedEvent
func NewContainerArrivedEvent(containerID uuid.UUID, number string) *ContainerArrivedEvent {
	return &ContainerArrivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContainerArrived, AggregateTypeContainer, containerID),
		Number:          number,
	}
}

// EventType returns the event type name
func (e *ContainerArrivedEvent) EventType() string {
	return EventTypeContainerArrived
}

// ContainerClosedEvent is raised when a container lifecycle ends
type ContainerClosedEvent struct {
	shared.BaseDomainEvent
	Number string `json:"number"`
}

// NewContainerClosedEvent creates a new ContainerClosedEvent
func NewContainerClosedEvent(containerID uuid.UUID, number string) *ContainerClosedEvent {
	return &ContainerClosedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContainerClosed, AggregateTypeContainer, containerID),
		Number:          number,
	}
}

// EventType returns the event type name
func (e *ContainerClosedEvent) EventType() string {
	return EventTypeContainerClosed
}

// ExpenseAddedEvent is raised when a cost entry lands on the ledger
type ExpenseAddedEvent struct {
	shared.BaseDomainEvent
	ExpenseID uuid.UUID       `json:"expense_id"`
	Category  string          `json:"category"`
	AmountUSD decimal.Decimal `json:"amount_usd"`
}

// NewExpenseAddedEvent creates a new ExpenseAddedEvent
func NewExpenseAddedEvent(containerID, expenseID uuid.UUID, category string, amountUSD decimal.Decimal) *ExpenseAddedEvent {
	return &ExpenseAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExpenseAdded, AggregateTypeContainer, containerID),
		ExpenseID:       expenseID,
		Category:        category,
		AmountUSD:       amountUSD,
	}
}

// EventType returns the event type name
func (e *ExpenseAddedEvent) EventType() string {
	return EventTypeExpenseAdded
}

// InvestmentAddedEvent is raised when an investor contributes capital
type InvestmentAddedEvent struct {
	shared.BaseDomainEvent
	InvestorID uuid.UUID       `json:"investor_id"`
	AmountUSD  decimal.Decimal `json:"amount_usd"`
}

// NewInvestmentAddedEvent creates a new InvestmentAddedEvent
func NewInvestmentAddedEvent(containerID, investorID uuid.UUID, amountUSD decimal.Decimal) *InvestmentAddedEvent {
	return &InvestmentAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvestmentAdded, AggregateTypeContainer, containerID),
		InvestorID:      investorID,
		AmountUSD:       amountUSD,
	}
}

// EventType returns the event type name
func (e *InvestmentAddedEvent) EventType() string {
	return EventTypeInvestmentAdded
}

// PayoutRecordedEvent is raised when capital is settled back to an
// investor
type PayoutRecordedEvent struct {
	shared.BaseDomainEvent
	InvestorID uuid.UUID       `json:"investor_id"`
	AmountUSD  decimal.Decimal `json:"amount_usd"`
}

// NewPayoutRecordedEvent creates a new PayoutRecordedEvent
func NewPayoutRecordedEvent(containerID, investorID uuid.UUID, amountUSD decimal.Decimal) *PayoutRecordedEvent {
	return &PayoutRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePayoutRecorded, AggregateTypeContainer, containerID),
		InvestorID:      investorID,
		AmountUSD:       amountUSD,
	}
}

// EventType returns the event type name
func (e *PayoutRecordedEvent) EventType() string {
	return EventTypePayoutRecorded
}
