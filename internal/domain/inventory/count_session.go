package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// SessionStatus represents the status of an inventory count session
type SessionStatus string

const (
	SessionStatusPending     SessionStatus = "PENDING"
	SessionStatusDiscrepancy SessionStatus = "DISCREPANCY"
	SessionStatusConfirmed   SessionStatus = "CONFIRMED"
)

// IsValid checks if the status is a valid SessionStatus
func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionStatusPending, SessionStatusDiscrepancy, SessionStatusConfirmed:
		return true
	}
	return false
}

// String returns the string representation of SessionStatus
func (s SessionStatus) String() string {
	return string(s)
}

// CountSessionItem is a frozen per-line snapshot taken when the count
// was submitted. Later stock mutations never rewrite these rows.
type CountSessionItem struct {
	ID             uuid.UUID
	SessionID      uuid.UUID
	ContainerID    uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	SystemQuantity decimal.Decimal
	ActualQuantity decimal.Decimal
	Difference     decimal.Decimal
	CreatedAt      time.Time
}

// HasDifference returns true when the counted quantity disagrees with
// the system quantity
func (i *CountSessionItem) HasDifference() bool {
	return !i.Difference.IsZero()
}

// CountLine is the submitted count for one (container, product) pair
type CountLine struct {
	ContainerID    uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	SystemQuantity decimal.Decimal
	ActualQuantity decimal.Decimal
}

// CountSession is an inventory reconciliation snapshot. A clean count
// starts PENDING and carries a short numeric confirmation code; any
// line difference makes it a DISCREPANCY which never gets a code and
// needs manual resolution. Items are immutable once created; the only
// mutation is the PENDING to CONFIRMED transition.
type CountSession struct {
	shared.BaseAggregateRoot
	Status      SessionStatus
	Code        *string
	Items       []CountSessionItem
	CountedBy   uuid.UUID
	CountedAt   time.Time
	ConfirmedBy *uuid.UUID
	ConfirmedAt *time.Time
}

// NewCountSession snapshots a submitted count. Status is derived from
// the lines: any nonzero difference marks the whole session as a
// discrepancy.
func NewCountSession(countedBy uuid.UUID, lines []CountLine) (*CountSession, error) {
	if countedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COUNTER", "Counter ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_COUNT", "Count must have at least one line")
	}

	now := time.Now()
	session := &CountSession{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            SessionStatusPending,
		Items:             make([]CountSessionItem, 0, len(lines)),
		CountedBy:         countedBy,
		CountedAt:         now,
	}

	seen := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, line := range lines {
		if line.ActualQuantity.IsNegative() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
		}
		if seen[line.ContainerID][line.ProductID] {
			return nil, shared.NewDomainError("DUPLICATE_LINE", "Duplicate count line for "+line.ProductName)
		}
		if seen[line.ContainerID] == nil {
			seen[line.ContainerID] = make(map[uuid.UUID]bool)
		}
		seen[line.ContainerID][line.ProductID] = true

		diff := line.ActualQuantity.Sub(line.SystemQuantity)
		session.Items = append(session.Items, CountSessionItem{
			ID:             uuid.New(),
			SessionID:      session.ID,
			ContainerID:    line.ContainerID,
			ProductID:      line.ProductID,
			ProductName:    line.ProductName,
			SystemQuantity: line.SystemQuantity,
			ActualQuantity: line.ActualQuantity,
			Difference:     diff,
			CreatedAt:      now,
		})
		if !diff.IsZero() {
			session.Status = SessionStatusDiscrepancy
		}
	}

	session.AddDomainEvent(NewCountSubmittedEvent(session))
	return session, nil
}

// AssignCode attaches the confirmation code to a clean session. The
// caller guarantees uniqueness among live (PENDING and CONFIRMED)
// codes. Discrepancy sessions never expose a code.
func (s *CountSession) AssignCode(code string) error {
	if s.Status != SessionStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Only a pending session carries a confirmation code")
	}
	if s.Code != nil {
		return shared.NewDomainError("CODE_ALREADY_ASSIGNED", "Session already has a confirmation code")
	}
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Confirmation code cannot be empty")
	}

	s.Code = &code
	s.UpdatedAt = time.Now()
	return nil
}

// Confirm redeems the confirmation code. Only pending sessions
// confirm; a wrong code is rejected without state change.
func (s *CountSession) Confirm(code string, confirmedBy uuid.UUID) error {
	if s.Status == SessionStatusConfirmed {
		return shared.NewDomainError("ALREADY_CONFIRMED", "Session is already confirmed")
	}
	if s.Status != SessionStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Discrepancy sessions require manual resolution before confirmation")
	}
	if s.Code == nil || *s.Code != code {
		return shared.NewDomainError("INVALID_CODE", "Confirmation code does not match")
	}

	now := time.Now()
	s.Status = SessionStatusConfirmed
	s.ConfirmedBy = &confirmedBy
	s.ConfirmedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	s.AddDomainEvent(NewCountConfirmedEvent(s))
	return nil
}

// Resolve reopens a discrepancy session once the stock has been
// corrected to match the counted quantities. The session returns to
// PENDING so a fresh confirmation code can be issued; the frozen
// snapshot keeps recording what was found.
func (s *CountSession) Resolve() error {
	if s.Status != SessionStatusDiscrepancy {
		return shared.NewDomainError("INVALID_STATE", "Only discrepancy sessions can be resolved")
	}

	s.Status = SessionStatusPending
	s.Code = nil
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	s.AddDomainEvent(NewCountResolvedEvent(s))
	return nil
}

// DifferenceCount counts lines that disagree with the system quantity
func (s *CountSession) DifferenceCount() int {
	count := 0
	for i := range s.Items {
		if s.Items[i].HasDifference() {
			count++
		}
	}
	return count
}
