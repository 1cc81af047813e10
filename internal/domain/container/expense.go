package container

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// ContainerExpense is an immutable cost entry booked against a
// container. Expenses are never edited in place; adjustments go through
// signed corrections so the audit trail stays intact.
type ContainerExpense struct {
	ID          uuid.UUID
	ContainerID uuid.UUID
	PeriodID    uuid.UUID
	Category    string
	Description string
	AmountUSD   decimal.Decimal
	IncurredAt  time.Time
	Corrections []ExpenseCorrection
	CreatedAt   time.Time
}

// ExpenseCorrection is a signed delta against an expense. Unconfirmed
// corrections already count toward the container totals; confirmation
// is a review step that gates period closure.
type ExpenseCorrection struct {
	ID          uuid.UUID
	ExpenseID   uuid.UUID
	PeriodID    uuid.UUID
	DeltaUSD    decimal.Decimal
	Reason      string
	Confirmed   bool
	ConfirmedAt *time.Time
	ConfirmedBy *uuid.UUID
	CreatedAt   time.Time
}

// EffectiveAmount is the booked amount plus every correction delta,
// confirmed or not.
func (e *ContainerExpense) EffectiveAmount() decimal.Decimal {
	total := e.AmountUSD
	for i := range e.Corrections {
		total = total.Add(e.Corrections[i].DeltaUSD)
	}
	return total
}

// HasUnconfirmedCorrections reports whether any correction still awaits
// review.
func (e *ContainerExpense) HasUnconfirmedCorrections() bool {
	for i := range e.Corrections {
		if !e.Corrections[i].Confirmed {
			return true
		}
	}
	return false
}

// AddExpense books a cost entry against the container and recomputes
// the derived totals.
func (c *Container) AddExpense(periodID uuid.UUID, category, description string, amountUSD decimal.Decimal, incurredAt time.Time) (*ContainerExpense, error) {
	if err := c.rejectClosed(); err != nil {
		return nil, err
	}
	if category == "" {
		return nil, &shared.DomainError{
			Code:    "INVALID_EXPENSE",
			Message: "expense category is required",
		}
	}
	if !amountUSD.IsPositive() {
		return nil, &shared.DomainError{
			Code:    "INVALID_EXPENSE",
			Message: "expense amount must be positive",
		}
	}

	expense := ContainerExpense{
		ID:          uuid.New(),
		ContainerID: c.ID,
		PeriodID:    periodID,
		Category:    category,
		Description: description,
		AmountUSD:   amountUSD,
		IncurredAt:  incurredAt,
		Corrections: []ExpenseCorrection{},
		CreatedAt:   time.Now(),
	}
	c.Expenses = append(c.Expenses, expense)

	c.RecalculateFinancials()
	c.UpdatedAt = time.Now()
	c.AddDomainEvent(NewExpenseAddedEvent(c.ID, expense.ID, category, amountUSD))
	return &c.Expenses[len(c.Expenses)-1], nil
}

// ExpenseByID returns the expense entry, or nil. Callers use it to
// reach the expense's original period before booking a correction.
func (c *Container) ExpenseByID(expenseID uuid.UUID) *ContainerExpense {
	for i := range c.Expenses {
		if c.Expenses[i].ID == expenseID {
			return &c.Expenses[i]
		}
	}
	return nil
}

// AddExpenseCorrection books a signed adjustment against an existing
// expense. The delta takes effect in the totals immediately; zero
// deltas are rejected as they adjust nothing.
func (c *Container) AddExpenseCorrection(expenseID, periodID uuid.UUID, deltaUSD decimal.Decimal, reason string) (*ExpenseCorrection, error) {
	if err := c.rejectClosed(); err != nil {
		return nil, err
	}
	if deltaUSD.IsZero() {
		return nil, &shared.DomainError{
			Code:    "INVALID_CORRECTION",
			Message: "correction delta cannot be zero",
		}
	}
	if reason == "" {
		return nil, &shared.DomainError{
			Code:    "INVALID_CORRECTION",
			Message: "correction reason is required",
		}
	}

	expense := c.ExpenseByID(expenseID)
	if expense == nil {
		return nil, shared.ErrNotFound
	}
	if expense.EffectiveAmount().Add(deltaUSD).IsNegative() {
		return nil, &shared.DomainError{
			Code:    "INVALID_CORRECTION",
			Message: "correction would make the expense negative",
		}
	}

	correction := ExpenseCorrection{
		ID:        uuid.New(),
		ExpenseID: expenseID,
		PeriodID:  periodID,
		DeltaUSD:  deltaUSD,
		Reason:    reason,
		CreatedAt: time.Now(),
	}
	expense.Corrections = append(expense.Corrections, correction)

	c.RecalculateFinancials()
	c.UpdatedAt = time.Now()
	return &expense.Corrections[len(expense.Corrections)-1], nil
}

// ConfirmCorrection marks a correction as reviewed. Confirming an
// already-confirmed correction is a no-op; totals never change because
// the delta was counted when booked.
func (c *Container) ConfirmCorrection(correctionID, confirmedBy uuid.UUID) error {
	for i := range c.Expenses {
		for j := range c.Expenses[i].Corrections {
			corr := &c.Expenses[i].Corrections[j]
			if corr.ID != correctionID {
				continue
			}
			if corr.Confirmed {
				return nil
			}
			now := time.Now()
			corr.Confirmed = true
			corr.ConfirmedAt = &now
			corr.ConfirmedBy = &confirmedBy
			c.UpdatedAt = now
			return nil
		}
	}
	return shared.ErrNotFound
}

// UnconfirmedCorrectionCount counts corrections still awaiting review
// across the whole expense ledger.
func (c *Container) UnconfirmedCorrectionCount() int {
	count := 0
	for i := range c.Expenses {
		for j := range c.Expenses[i].Corrections {
			if !c.Expenses[i].Corrections[j].Confirmed {
				count++
			}
		}
	}
	return count
}
