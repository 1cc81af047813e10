package partner

import (
	"context"

	"github.com/google/uuid"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/partner"
	"github.com/importdesk/backend/internal/domain/shared"
)

// InvestorService manages the investor registry. Stakes and payouts
// live on the containers; the card here only carries the reporting
// total.
type InvestorService struct {
	scope appshared.TransactionScope
}

// NewInvestorService creates a new InvestorService
func NewInvestorService(scope appshared.TransactionScope) *InvestorService {
	return &InvestorService{scope: scope}
}

// Create registers an investor
func (s *InvestorService) Create(ctx context.Context, req CreateInvestorRequest, actor appshared.Actor) (*InvestorResponse, error) {
	var resp InvestorResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		investor, err := partner.NewInvestor(req.Name)
		if err != nil {
			return err
		}
		if err := investor.Update(req.Name, req.Phone, req.Notes); err != nil {
			return err
		}
		if err := repos.Investors().Save(ctx, investor); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"investor.create", partner.AggregateTypeInvestor, investor.ID, actor.UserID,
			map[string]any{"name": investor.Name},
		)); err != nil {
			return err
		}
		resp = ToInvestorResponse(investor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get returns one investor
func (s *InvestorService) Get(ctx context.Context, id uuid.UUID) (*InvestorResponse, error) {
	var resp InvestorResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		investor, err := repos.Investors().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToInvestorResponse(investor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns investors matching the filter
func (s *InvestorService) List(ctx context.Context, filter shared.Filter) ([]InvestorResponse, error) {
	var out []InvestorResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		investors, err := repos.Investors().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]InvestorResponse, 0, len(investors))
		for i := range investors {
			out = append(out, ToInvestorResponse(&investors[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update rewrites the investor's card
func (s *InvestorService) Update(ctx context.Context, id uuid.UUID, req UpdateInvestorRequest, actor appshared.Actor) (*InvestorResponse, error) {
	var resp InvestorResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		investor, err := repos.Investors().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := investor.Update(req.Name, req.Phone, req.Notes); err != nil {
			return err
		}
		if err := repos.Investors().Save(ctx, investor); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"investor.update", partner.AggregateTypeInvestor, investor.ID, actor.UserID,
			map[string]any{"name": investor.Name},
		)); err != nil {
			return err
		}
		resp = ToInvestorResponse(investor)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
