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

// Service handles container lifecycle, purchase figures and stock
// lines. Every mutation that moves money runs behind the period gate in
// the same transaction as the write.
type Service struct {
	scope appshared.TransactionScope
}

// NewService creates a new container Service
func NewService(scope appshared.TransactionScope) *Service {
	return &Service{scope: scope}
}

// Create registers a container. When no number is supplied a CNT
// document number is issued inside the same transaction.
func (s *Service) Create(ctx context.Context, req CreateContainerRequest, actor appshared.Actor) (*ContainerResponse, error) {
	var resp ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		number := req.Number
		if number == "" {
			var err error
			number, err = repos.Numbers().NextDocumentNumber(ctx, "CNT")
			if err != nil {
				return err
			}
		} else if existing, err := repos.Containers().FindByNumber(ctx, number); err == nil && existing != nil {
			return shared.NewDomainError("DUPLICATE_NUMBER", "container number already in use")
		}

		c, err := container.NewContainer(number)
		if err != nil {
			return err
		}
		if err := repos.Containers().Save(ctx, c); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"container.create", container.AggregateTypeContainer, c.ID, actor.UserID,
			map[string]any{"number": c.Number},
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

// Get returns one container with all children
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ContainerResponse, error) {
	var resp ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		c, err := repos.Containers().FindByID(ctx, id)
		if err != nil {
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

// List returns containers matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]ContainerResponse, error) {
	var out []ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		containers, err := repos.Containers().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]ContainerResponse, 0, len(containers))
		for i := range containers {
			out = append(out, ToContainerResponse(&containers[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MarkArrived transitions a container to ARRIVED, making its stock
// sellable. Not money-affecting, so the period gate does not apply.
func (s *Service) MarkArrived(ctx context.Context, id uuid.UUID, actor appshared.Actor) (*ContainerResponse, error) {
	return s.mutate(ctx, id, "container.arrive", actor, false, func(c *container.Container) error {
		return c.MarkArrived()
	})
}

// Close archives a container. Stock, expenses, investments and payouts
// are frozen from this point on.
func (s *Service) Close(ctx context.Context, id uuid.UUID, actor appshared.Actor) (*ContainerResponse, error) {
	return s.mutate(ctx, id, "container.close", actor, false, func(c *container.Container) error {
		return c.Close()
	})
}

// SetPurchase records the aggregate purchase figure and reruns the
// allocation pipeline.
func (s *Service) SetPurchase(ctx context.Context, id uuid.UUID, req SetPurchaseRequest, actor appshared.Actor) (*ContainerResponse, error) {
	return s.mutate(ctx, id, "container.set_purchase", actor, true, func(c *container.Container) error {
		return c.SetPurchase(req.TotalCNY, req.ExchangeRate)
	})
}

// AddItem registers stock for a product, merging into an existing line
// for the same product.
func (s *Service) AddItem(ctx context.Context, id uuid.UUID, req AddItemRequest, actor appshared.Actor) (*ContainerResponse, error) {
	return s.mutate(ctx, id, "container.add_item", actor, true, func(c *container.Container) error {
		return c.AddItem(req.ProductID, req.ProductName, req.ProductCode, req.Quantity, req.PurchaseOverride, req.SaleOverride)
	})
}

// AddManualStock increments an existing stock line, e.g. after finding
// uncounted goods.
func (s *Service) AddManualStock(ctx context.Context, id uuid.UUID, req AddManualStockRequest, actor appshared.Actor) (*ContainerResponse, error) {
	return s.mutate(ctx, id, "container.add_stock", actor, true, func(c *container.Container) error {
		return c.AddManualStock(req.ProductID, req.Quantity)
	})
}

// mutate loads the container, applies fn, saves with optimistic locking
// and records an audit entry, all in one transaction. When gated, the
// current period must be open.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, action string, actor appshared.Actor, gated bool, fn func(c *container.Container) error) (*ContainerResponse, error) {
	var resp ContainerResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if gated {
			if _, err := period.EnsureOpenForDate(ctx, repos.Periods(), time.Now()); err != nil {
				return err
			}
		}
		c, err := repos.Containers().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := repos.Containers().SaveWithLock(ctx, c); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			action, container.AggregateTypeContainer, c.ID, actor.UserID,
			map[string]any{"number": c.Number},
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
