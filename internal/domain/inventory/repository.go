package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/importdesk/backend/internal/domain/shared"
)

// Repository defines the interface for count session persistence
type Repository interface {
	// FindByID finds a session by ID with its lines loaded
	FindByID(ctx context.Context, id uuid.UUID) (*CountSession, error)

	// FindAll finds sessions with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]CountSession, error)

	// FindByStatus finds sessions in the given status
	FindByStatus(ctx context.Context, status SessionStatus, filter shared.Filter) ([]CountSession, error)

	// CodeInUse reports whether a confirmation code is already held by
	// a PENDING or CONFIRMED session
	CodeInUse(ctx context.Context, code string) (bool, error)

	// Save creates or updates a session
	Save(ctx context.Context, s *CountSession) error

	// Count counts sessions matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts sessions per status across all periods
	CountByStatus(ctx context.Context, status SessionStatus) (int64, error)

	// CountByStatusInRange counts sessions per status whose count was
	// taken within [from, to), used by the period closure checklist
	CountByStatusInRange(ctx context.Context, status SessionStatus, from, to time.Time) (int64, error)
}
