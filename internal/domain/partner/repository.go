package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/importdesk/backend/internal/domain/shared"
)

// ClientRepository defines the interface for client persistence
type ClientRepository interface {
	// FindByID finds a client by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)

	// FindByCode finds a client by its code
	FindByCode(ctx context.Context, code string) (*Client, error)

	// FindAll finds clients with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Client, error)

	// FindDebtors finds active clients with outstanding debt
	FindDebtors(ctx context.Context, filter shared.Filter) ([]Client, error)

	// Save creates or updates a client
	Save(ctx context.Context, c *Client) error

	// SaveWithLock saves using optimistic locking on the version column
	SaveWithLock(ctx context.Context, c *Client) error

	// Count counts clients matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// InvestorRepository defines the interface for investor persistence
type InvestorRepository interface {
	// FindByID finds an investor by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Investor, error)

	// FindAll finds investors with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Investor, error)

	// Save creates or updates an investor
	Save(ctx context.Context, i *Investor) error

	// Count counts investors matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
