package container

import (
	"context"
	"time"

	"github.com/google/uuid"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/telemetry"
)

// SettlementService records investor stakes and settles capital back
// out of the payable pool.
type SettlementService struct {
	scope appshared.TransactionScope
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(scope appshared.TransactionScope) *SettlementService {
	return &SettlementService{scope: scope}
}

// AddInvestment records a capital contribution. Repeat contributions by
// the same investor accumulate on one stake, and all percentage shares
// are rebalanced.
func (s *SettlementService) AddInvestment(ctx context.Context, containerID uuid.UUID, req AddInvestmentRequest, actor appshared.Actor) (*ContainerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "add_investment")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrContainerID, containerID.String(),
		telemetry.SpanAttrInvestorID, req.InvestorID.String(),
		telemetry.SpanAttrAmount, req.AmountUSD.String(),
	)

	var resp ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if _, err := period.EnsureOpenForDate(ctx, repos.Periods(), time.Now()); err != nil {
			return err
		}
		investor, err := repos.Investors().FindByID(ctx, req.InvestorID)
		if err != nil {
			return err
		}
		if !investor.Active {
			return shared.NewDomainError("INVESTOR_INACTIVE", "investor is deactivated")
		}
		c, err := repos.Containers().FindByID(ctx, containerID)
		if err != nil {
			return err
		}
		inv, err := c.AddInvestment(investor.ID, investor.Name, req.AmountUSD)
		if err != nil {
			return err
		}
		if err := repos.Containers().SaveWithLock(ctx, c); err != nil {
			return err
		}

		// Reporting figure on the investor card; the stake on the
		// container is the authoritative record.
		investor.RefreshTotalInvested(investor.TotalInvestedUSD.Add(req.AmountUSD))
		if err := repos.Investors().Save(ctx, investor); err != nil {
			return err
		}

		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"container.add_investment", container.AggregateTypeContainer, c.ID, actor.UserID,
			map[string]any{"investor_id": investor.ID.String(), "amount_usd": req.AmountUSD.String(), "share": inv.PercentageShare.String()},
		)); err != nil {
			return err
		}
		resp = ToContainerResponse(c)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return &resp, nil
}

// Payables returns the settlement position of every investor on the
// container: share of the payable pool, paid so far, still available,
// and the profit share.
func (s *SettlementService) Payables(ctx context.Context, containerID uuid.UUID) ([]PayableResponse, error) {
	var out []PayableResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		c, err := repos.Containers().FindByID(ctx, containerID)
		if err != nil {
			return err
		}
		pool := c.PayablePool()
		out = make([]PayableResponse, 0, len(c.Investments))
		for i := range c.Investments {
			inv := &c.Investments[i]
			out = append(out, PayableResponse{
				ContainerID:     c.ID,
				InvestorID:      inv.InvestorID,
				PayablePoolUSD:  pool,
				PercentageShare: inv.PercentageShare,
				ShareUSD:        c.PayableShare(inv.InvestorID),
				PaidOutUSD:      c.TotalPaidOut(inv.InvestorID),
				AvailableUSD:    c.AvailablePayout(inv.InvestorID),
				ProfitShareUSD:  c.ProfitShare(inv.InvestorID),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RecordPayout settles capital back to an investor. Amounts beyond the
// available payout are rejected, with a small epsilon tolerated for
// rounding. Requires a privileged actor.
func (s *SettlementService) RecordPayout(ctx context.Context, containerID uuid.UUID, req RecordPayoutRequest, actor appshared.Actor) (*ContainerResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settlement", "record_payout")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrContainerID, containerID.String(),
		telemetry.SpanAttrInvestorID, req.InvestorID.String(),
		telemetry.SpanAttrAmount, req.AmountUSD.String(),
	)

	if !actor.IsPrivileged() {
		return nil, shared.ErrForbidden
	}
	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	var resp ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if _, err := period.EnsureOpenForDate(ctx, repos.Periods(), paidAt); err != nil {
			return err
		}
		c, err := repos.Containers().FindByID(ctx, containerID)
		if err != nil {
			return err
		}
		payout, err := c.RecordPayout(req.InvestorID, req.AmountUSD, req.Note, paidAt)
		if err != nil {
			return err
		}
		if err := repos.Containers().SaveWithLock(ctx, c); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"container.record_payout", container.AggregateTypeContainer, c.ID, actor.UserID,
			map[string]any{"investor_id": req.InvestorID.String(), "payout_id": payout.ID.String(), "amount_usd": payout.AmountUSD.String()},
		)); err != nil {
			return err
		}
		resp = ToContainerResponse(c)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return &resp, nil
}
