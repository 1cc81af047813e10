package container

import (
	"context"

	"github.com/google/uuid"
	"github.com/importdesk/backend/internal/domain/shared"
)

// Repository defines the interface for container persistence. The
// aggregate is loaded and saved whole: items, expenses with their
// corrections, investments and payouts travel with the root.
type Repository interface {
	// FindByID finds a container by ID with all children loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Container, error)

	// FindByNumber finds a container by its business number
	FindByNumber(ctx context.Context, number string) (*Container, error)

	// FindAll finds containers with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Container, error)

	// FindByStatus finds containers in the given status
	FindByStatus(ctx context.Context, status ContainerStatus, filter shared.Filter) ([]Container, error)

	// FindByProduct finds non-closed containers holding stock of the
	// product, oldest arrival first
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Container, error)

	// Save creates or updates a container and its children
	Save(ctx context.Context, c *Container) error

	// SaveWithLock saves using optimistic locking on the version column
	SaveWithLock(ctx context.Context, c *Container) error

	// Count counts containers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountNegativeProfit counts non-closed containers whose net profit
	// is negative among those with expense or sale activity in the
	// period, used by the period closure checklist
	CountNegativeProfit(ctx context.Context, periodID uuid.UUID) (int64, error)

	// CountUnconfirmedCorrections counts expense corrections awaiting
	// review that were booked into the period, used by the period
	// closure checklist
	CountUnconfirmedCorrections(ctx context.Context, periodID uuid.UUID) (int64, error)
}
