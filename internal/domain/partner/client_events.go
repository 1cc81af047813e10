package partner

import (
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeClient   = "Client"
	AggregateTypeInvestor = "Investor"
)

// Event type constants
const (
	EventTypeClientCreated     = "ClientCreated"
	EventTypeClientDebtChanged = "ClientDebtChanged"
	EventTypeInvestorCreated   = "InvestorCreated"
)

// ClientCreatedEvent is raised when a new client is registered
type ClientCreatedEvent struct {
	shared.BaseDomainEvent
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewClientCreatedEvent creates a new ClientCreatedEvent
func NewClientCreatedEvent(c *Client) *ClientCreatedEvent {
	return &ClientCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientCreated, AggregateTypeClient, c.ID),
		Code:            c.Code,
		Name:            c.Name,
	}
}

// EventType returns the event type name
func (e *ClientCreatedEvent) EventType() string {
	return EventTypeClientCreated
}

// ClientDebtChangedEvent is raised when the rolling debt balance moves
type ClientDebtChangedEvent struct {
	shared.BaseDomainEvent
	OldDebtUSD decimal.Decimal `json:"old_debt_usd"`
	NewDebtUSD decimal.Decimal `json:"new_debt_usd"`
}

// NewClientDebtChangedEvent creates a new ClientDebtChangedEvent
func NewClientDebtChangedEvent(c *Client, oldDebt, newDebt decimal.Decimal) *ClientDebtChangedEvent {
	return &ClientDebtChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeClientDebtChanged, AggregateTypeClient, c.ID),
		OldDebtUSD:      oldDebt,
		NewDebtUSD:      newDebt,
	}
}

// EventType returns the event type name
func (e *ClientDebtChangedEvent) EventType() string {
	return EventTypeClientDebtChanged
}

// InvestorCreatedEvent is raised when a new investor is registered
type InvestorCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewInvestorCreatedEvent creates a new InvestorCreatedEvent
func NewInvestorCreatedEvent(i *Investor) *InvestorCreatedEvent {
	return &InvestorCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvestorCreated, AggregateTypeInvestor, i.ID),
		Name:            i.Name,
	}
}

// EventType returns the event type name
func (e *InvestorCreatedEvent) EventType() string {
	return EventTypeInvestorCreated
}
