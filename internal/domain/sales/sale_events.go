package sales

import (
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// Event type constants
const (
	EventTypeSaleCreated       = "SaleCreated"
	EventTypePaymentReceived   = "SalePaymentReceived"
	EventTypeReturnProcessed   = "SaleReturnProcessed"
	EventTypeExchangeProcessed = "SaleExchangeProcessed"
)

// SaleCreatedEvent is raised when a new sale is registered
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	Number   string `json:"number"`
	ClientID string `json:"client_id"`
	Mode     string `json:"mode"`
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCreated, AggregateTypeSale, s.ID),
		Number:          s.Number,
		ClientID:        s.ClientID.String(),
		Mode:            s.Mode.String(),
	}
}

// EventType returns the event type name
func (e *SaleCreatedEvent) EventType() string {
	return EventTypeSaleCreated
}

// PaymentReceivedEvent is raised when debt is settled against a sale
type PaymentReceivedEvent struct {
	shared.BaseDomainEvent
	AmountUSD decimal.Decimal `json:"amount_usd"`
	NewStatus string          `json:"new_status"`
}

// NewPaymentReceivedEvent creates a new PaymentReceivedEvent
func NewPaymentReceivedEvent(s *Sale, amountUSD decimal.Decimal) *PaymentReceivedEvent {
	return &PaymentReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePaymentReceived, AggregateTypeSale, s.ID),
		AmountUSD:       amountUSD,
		NewStatus:       s.Status.String(),
	}
}

// EventType returns the event type name
func (e *PaymentReceivedEvent) EventType() string {
	return EventTypePaymentReceived
}

// ReturnProcessedEvent is raised when sold goods come back
type ReturnProcessedEvent struct {
	shared.BaseDomainEvent
	ReturnTotalUSD decimal.Decimal `json:"return_total_usd"`
	NewStatus      string          `json:"new_status"`
}

// NewReturnProcessedEvent creates a new ReturnProcessedEvent
func NewReturnProcessedEvent(s *Sale, returnTotal decimal.Decimal) *ReturnProcessedEvent {
	return &ReturnProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReturnProcessed, AggregateTypeSale, s.ID),
		ReturnTotalUSD:  returnTotal,
		NewStatus:       s.Status.String(),
	}
}

// EventType returns the event type name
func (e *ReturnProcessedEvent) EventType() string {
	return EventTypeReturnProcessed
}

// ExchangeProcessedEvent is raised when a return and replacement lines
// settle as one operation
type ExchangeProcessedEvent struct {
	shared.BaseDomainEvent
	ReturnTotalUSD decimal.Decimal `json:"return_total_usd"`
	NewTotalUSD    decimal.Decimal `json:"new_total_usd"`
}

// NewExchangeProcessedEvent creates a new ExchangeProcessedEvent
func NewExchangeProcessedEvent(s *Sale, returnTotal decimal.Decimal) *ExchangeProcessedEvent {
	return &ExchangeProcessedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeExchangeProcessed, AggregateTypeSale, s.ID),
		ReturnTotalUSD:  returnTotal,
		NewTotalUSD:     s.TotalAmountUSD,
	}
}

// EventType returns the event type name
func (e *ExchangeProcessedEvent) EventType() string {
	return EventTypeExchangeProcessed
}
