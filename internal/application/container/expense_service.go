package container

import (
	"context"
	"time"

	"github.com/google/uuid"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/shared"
)

// ExpenseService books container expenses and their corrections.
// Expenses count into totals the moment they are written; confirmation
// of corrections only matters for period closure.
type ExpenseService struct {
	scope appshared.TransactionScope
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(scope appshared.TransactionScope) *ExpenseService {
	return &ExpenseService{scope: scope}
}

// AddExpense books a cost entry against the container. The entry is
// stamped with the open period owning its incurred date.
func (s *ExpenseService) AddExpense(ctx context.Context, containerID uuid.UUID, req AddExpenseRequest, actor appshared.Actor) (*ContainerResponse, error) {
	incurredAt := time.Now()
	if req.IncurredAt != nil {
		incurredAt = *req.IncurredAt
	}

	var resp ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		p, err := period.EnsureOpenForDate(ctx, repos.Periods(), incurredAt)
		if err != nil {
			return err
		}
		c, err := repos.Containers().FindByID(ctx, containerID)
		if err != nil {
			return err
		}
		exp, err := c.AddExpense(p.ID, req.Category, req.Description, req.AmountUSD, incurredAt)
		if err != nil {
			return err
		}
		if err := repos.Containers().SaveWithLock(ctx, c); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"container.add_expense", container.AggregateTypeContainer, c.ID, actor.UserID,
			map[string]any{"expense_id": exp.ID.String(), "category": exp.Category, "amount_usd": exp.AmountUSD.String()},
		)); err != nil {
			return err
		}
		resp = ToContainerResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddCorrection books a signed adjustment against an expense. The
// delta alters totals immediately; the correction still awaits
// confirmation before the period can close. A correction retroactively
// moves the expense total of the period the expense was booked in, so
// it is that original period which must still be open.
func (s *ExpenseService) AddCorrection(ctx context.Context, containerID, expenseID uuid.UUID, req AddCorrectionRequest, actor appshared.Actor) (*ContainerResponse, error) {
	var resp ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		c, err := repos.Containers().FindByID(ctx, containerID)
		if err != nil {
			return err
		}
		expense := c.ExpenseByID(expenseID)
		if expense == nil {
			return shared.ErrNotFound
		}
		p, err := period.EnsureOpenByID(ctx, repos.Periods(), expense.PeriodID)
		if err != nil {
			return err
		}
		corr, err := c.AddExpenseCorrection(expenseID, p.ID, req.DeltaUSD, req.Reason)
		if err != nil {
			return err
		}
		if err := repos.Containers().SaveWithLock(ctx, c); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"container.add_correction", container.AggregateTypeContainer, c.ID, actor.UserID,
			map[string]any{"expense_id": expenseID.String(), "correction_id": corr.ID.String(), "delta_usd": corr.DeltaUSD.String(), "reason": corr.Reason},
		)); err != nil {
			return err
		}
		resp = ToContainerResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmCorrection marks a correction as reviewed. Confirming twice is
// a no-op. Requires a privileged actor.
func (s *ExpenseService) ConfirmCorrection(ctx context.Context, containerID, correctionID uuid.UUID, actor appshared.Actor) (*ContainerResponse, error) {
	if !actor.IsPrivileged() {
		return nil, shared.ErrForbidden
	}

	var resp ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		c, err := repos.Containers().FindByID(ctx, containerID)
		if err != nil {
			return err
		}
		if err := c.ConfirmCorrection(correctionID, actor.UserID); err != nil {
			return err
		}
		if err := repos.Containers().SaveWithLock(ctx, c); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"container.confirm_correction", container.AggregateTypeContainer, c.ID, actor.UserID,
			map[string]any{"correction_id": correctionID.String()},
		)); err != nil {
			return err
		}
		resp = ToContainerResponse(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
