package period

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/importdesk/backend/internal/domain/shared"
)

// Repository defines the interface for financial period persistence
type Repository interface {
	// FindByID finds a period by ID
	FindByID(ctx context.Context, id uuid.UUID) (*FinancialPeriod, error)

	// FindByYearMonth finds the period owning (year, month)
	FindByYearMonth(ctx context.Context, year int, month time.Month) (*FinancialPeriod, error)

	// FindOrCreate returns the period owning (year, month), creating it
	// as OPEN if it does not exist yet. The (year, month) pair is unique.
	FindOrCreate(ctx context.Context, year int, month time.Month) (*FinancialPeriod, error)

	// FindAll finds all periods with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]FinancialPeriod, error)

	// Save creates or updates a period
	Save(ctx context.Context, p *FinancialPeriod) error

	// SaveWithLock saves using optimistic locking on the version column
	SaveWithLock(ctx context.Context, p *FinancialPeriod) error

	// Count counts periods matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
