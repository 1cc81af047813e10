package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/importdesk/backend/internal/domain/shared"
)

// Repository defines the interface for sale persistence. Sales load
// whole: items, payments and returns travel with the root.
type Repository interface {
	// FindByID finds a sale by ID with all children loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// FindByNumber finds a sale by its document number
	FindByNumber(ctx context.Context, number string) (*Sale, error)

	// FindAll finds sales with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// FindByClient finds sales for a client
	FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindByPeriod finds sales booked in a financial period
	FindByPeriod(ctx context.Context, periodID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindByStatus finds sales in the given settlement status
	FindByStatus(ctx context.Context, status SaleStatus, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale and its children
	Save(ctx context.Context, s *Sale) error

	// SaveWithLock saves using optimistic locking on the version column
	SaveWithLock(ctx context.Context, s *Sale) error

	// Count counts sales matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountWithDebt counts sales in the period with a positive debt
	// balance, used by the period closure checklist
	CountWithDebt(ctx context.Context, periodID uuid.UUID) (int64, error)

	// CountOutstanding counts sales in the period in DEBT or
	// PARTIALLY_PAID status, used by the period closure checklist
	CountOutstanding(ctx context.Context, periodID uuid.UUID) (int64, error)
}
