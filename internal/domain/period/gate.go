package period

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/importdesk/backend/internal/domain/shared"
)

// EnsureOpenForDate resolves the period owning the given date, creating
// it as OPEN if absent, and fails with ErrPeriodLocked if it is LOCKED.
// Callers must invoke this as the first step of every money-affecting
// mutation, inside the same transaction as the mutation itself.
func EnsureOpenForDate(ctx context.Context, repo Repository, date time.Time) (*FinancialPeriod, error) {
	year, month := PeriodOf(date)
	p, err := repo.FindOrCreate(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if p.IsLocked() {
		return nil, shared.ErrPeriodLocked
	}
	return p, nil
}

// EnsureOpenByID asserts the identified period is OPEN. Used when an
// entity already carries a period reference.
func EnsureOpenByID(ctx context.Context, repo Repository, id uuid.UUID) (*FinancialPeriod, error) {
	p, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.IsLocked() {
		return nil, shared.ErrPeriodLocked
	}
	return p, nil
}
