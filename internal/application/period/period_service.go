package period

import (
	"context"
	"time"

	"github.com/google/uuid"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/inventory"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/shared"
)

// Service handles financial period operations: resolution, the closure
// checklist, locking and unlocking.
type Service struct {
	scope appshared.TransactionScope
}

// NewService creates a new period Service
func NewService(scope appshared.TransactionScope) *Service {
	return &Service{scope: scope}
}

// Current resolves the period owning today, creating it as OPEN on
// first access.
func (s *Service) Current(ctx context.Context) (*PeriodResponse, error) {
	var resp PeriodResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		year, month := period.PeriodOf(time.Now())
		p, err := repos.Periods().FindOrCreate(ctx, year, month)
		if err != nil {
			return err
		}
		resp = ToPeriodResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns one period by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*PeriodResponse, error) {
	var resp PeriodResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		p, err := repos.Periods().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToPeriodResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns periods, newest first
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]PeriodResponse, error) {
	var out []PeriodResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		periods, err := repos.Periods().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]PeriodResponse, 0, len(periods))
		for i := range periods {
			out = append(out, ToPeriodResponse(&periods[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Checklist gathers the closure predicates for a period from source
// rows. Read-only; the same gathering runs again inside Lock.
func (s *Service) Checklist(ctx context.Context, periodID uuid.UUID) (*ChecklistResponse, error) {
	var resp ChecklistResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		p, err := repos.Periods().FindByID(ctx, periodID)
		if err != nil {
			return err
		}
		checklist, err := gatherChecklist(ctx, repos, p)
		if err != nil {
			return err
		}
		resp = ToChecklistResponse(p.Label(), checklist)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Lock gathers the checklist and locks the period in one transaction.
// Any failing predicate aborts with a CLOSURE_BLOCKED error naming the
// specific blockers.
func (s *Service) Lock(ctx context.Context, periodID uuid.UUID, actor appshared.Actor) (*PeriodResponse, error) {
	if !actor.IsPrivileged() {
		return nil, shared.ErrForbidden
	}

	var resp PeriodResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		p, err := repos.Periods().FindByID(ctx, periodID)
		if err != nil {
			return err
		}

		checklist, err := gatherChecklist(ctx, repos, p)
		if err != nil {
			return err
		}
		if err := p.Lock(actor.UserID, checklist); err != nil {
			return err
		}
		if err := repos.Periods().SaveWithLock(ctx, p); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"period.lock", period.AggregateTypeFinancialPeriod, p.ID, actor.UserID,
			map[string]any{"label": p.Label()},
		)); err != nil {
			return err
		}

		resp = ToPeriodResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unlock reopens a locked period. The reason is mandatory and lands in
// both the period row and the audit trail.
func (s *Service) Unlock(ctx context.Context, periodID uuid.UUID, reason string, actor appshared.Actor) (*PeriodResponse, error) {
	if !actor.IsPrivileged() {
		return nil, shared.ErrForbidden
	}

	var resp PeriodResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		p, err := repos.Periods().FindByID(ctx, periodID)
		if err != nil {
			return err
		}
		if err := p.Unlock(actor.UserID, reason); err != nil {
			return err
		}
		if err := repos.Periods().SaveWithLock(ctx, p); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"period.unlock", period.AggregateTypeFinancialPeriod, p.ID, actor.UserID,
			map[string]any{"label": p.Label(), "reason": reason},
		)); err != nil {
			return err
		}

		resp = ToPeriodResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// gatherChecklist collects every closure predicate from source rows
// inside the caller's transaction. Every predicate is scoped to the
// period being closed: corrections by the period they were booked
// into, sessions by when the count was taken.
func gatherChecklist(ctx context.Context, repos appshared.TransactionalRepositories, p *period.FinancialPeriod) (period.ClosureChecklist, error) {
	var c period.ClosureChecklist
	var err error

	from, to := p.Start(), p.End()
	if c.SalesWithDebt, err = repos.Sales().CountWithDebt(ctx, p.ID); err != nil {
		return c, err
	}
	if c.UnsettledSales, err = repos.Sales().CountOutstanding(ctx, p.ID); err != nil {
		return c, err
	}
	if c.UnconfirmedCorrections, err = repos.Containers().CountUnconfirmedCorrections(ctx, p.ID); err != nil {
		return c, err
	}
	if c.NegativeProfitContainers, err = repos.Containers().CountNegativeProfit(ctx, p.ID); err != nil {
		return c, err
	}
	if c.DiscrepancySessions, err = repos.Counts().CountByStatusInRange(ctx, inventory.SessionStatusDiscrepancy, from, to); err != nil {
		return c, err
	}
	if c.PendingSessions, err = repos.Counts().CountByStatusInRange(ctx, inventory.SessionStatusPending, from, to); err != nil {
		return c, err
	}
	if c.ConfirmedSessions, err = repos.Counts().CountByStatusInRange(ctx, inventory.SessionStatusConfirmed, from, to); err != nil {
		return c, err
	}
	return c, nil
}
