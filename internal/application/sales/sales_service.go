package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appshared "github.com/importdesk/backend/internal/application/shared"
	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/sales"
	"github.com/importdesk/backend/internal/domain/shared"
	"github.com/importdesk/backend/internal/infrastructure/telemetry"
)

// Service orchestrates the sales ledger: creating sales, taking
// payments, processing returns and exchanges. Every mutation moves
// stock, client debt and realized container margin inside one
// transaction behind the period gate.
type Service struct {
	scope appshared.TransactionScope
}

// NewService creates a new sales Service
func NewService(scope appshared.TransactionScope) *Service {
	return &Service{scope: scope}
}

// Get returns one sale with all children
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	var resp SaleResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		sale, err := repos.Sales().FindByID(ctx, id)
		if err != nil {
			return err
		}
		resp = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// List returns sales matching the filter
func (s *Service) List(ctx context.Context, filter shared.Filter) ([]SaleResponse, error) {
	var out []SaleResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		found, err := repos.Sales().FindAll(ctx, filter)
		if err != nil {
			return err
		}
		out = make([]SaleResponse, 0, len(found))
		for i := range found {
			out = append(out, ToSaleResponse(&found[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ListByClient returns sales for one client
func (s *Service) ListByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]SaleResponse, error) {
	var out []SaleResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		found, err := repos.Sales().FindByClient(ctx, clientID, filter)
		if err != nil {
			return err
		}
		out = make([]SaleResponse, 0, len(found))
		for i := range found {
			out = append(out, ToSaleResponse(&found[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// containerSet caches containers touched by one operation so stock and
// margin changes land on one instance per container, saved once.
type containerSet struct {
	repo   container.Repository
	loaded map[uuid.UUID]*container.Container
}

func newContainerSet(repo container.Repository) *containerSet {
	return &containerSet{repo: repo, loaded: make(map[uuid.UUID]*container.Container)}
}

func (cs *containerSet) get(ctx context.Context, id uuid.UUID) (*container.Container, error) {
	if c, ok := cs.loaded[id]; ok {
		return c, nil
	}
	c, err := cs.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cs.loaded[id] = c
	return c, nil
}

func (cs *containerSet) saveAll(ctx context.Context) error {
	for _, c := range cs.loaded {
		if err := cs.repo.SaveWithLock(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// resolvePrice picks the line's unit price: an explicit price on the
// request wins, then the product's sale price override on the
// container.
func resolvePrice(item *container.ContainerItem, requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested != nil {
		if requested.IsNegative() {
			return decimal.Zero, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
		}
		return *requested, nil
	}
	if item.SalePriceOverrideUSD != nil {
		return *item.SalePriceOverrideUSD, nil
	}
	return decimal.Zero, shared.NewDomainError("NO_SALE_PRICE",
		"No unit price given and the product has no sale price on the container")
}

// sellableItem asserts the container can serve the line and returns its
// stock record for the product.
func sellableItem(c *container.Container, productID uuid.UUID) (*container.ContainerItem, error) {
	if c.Status != container.ContainerStatusArrived {
		return nil, shared.NewDomainError("CONTAINER_NOT_SELLABLE",
			"Container "+c.Number+" is not ARRIVED; its stock cannot be sold")
	}
	item := c.ItemByProduct(productID)
	if item == nil {
		return nil, shared.NewDomainError("PRODUCT_NOT_IN_CONTAINER",
			"Container "+c.Number+" holds no stock of the requested product")
	}
	return item, nil
}

// CreateSale books a sale: stock is deducted at current unit cost,
// prices and costs freeze on the lines, the upfront payment is taken
// and any deferred remainder lands on the client's debt after the
// credit check.
func (s *Service) CreateSale(ctx context.Context, req CreateSaleRequest, actor appshared.Actor) (*SaleResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "sale", "create")
	defer span.End()
	telemetry.SetAttributes(span,
		telemetry.SpanAttrClientID, req.ClientID.String(),
		"mode", req.Mode,
		"lines_count", len(req.Lines),
	)

	mode := sales.SaleMode(req.Mode)
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_SALE_MODE", "Unknown sale mode: "+req.Mode)
	}
	soldAt := time.Now()
	if req.SoldAt != nil {
		soldAt = *req.SoldAt
	}

	var resp SaleResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		p, err := period.EnsureOpenForDate(ctx, repos.Periods(), soldAt)
		if err != nil {
			return err
		}

		client, err := repos.Clients().FindByID(ctx, req.ClientID)
		if err != nil {
			return err
		}
		if !client.IsActive() {
			return shared.NewDomainError("CLIENT_INACTIVE", "Client "+client.Code+" is deactivated")
		}

		number, err := repos.Numbers().NextDocumentNumber(ctx, "INV")
		if err != nil {
			return err
		}
		sale, err := sales.NewSale(number, client.ID, client.Name, mode, p.ID, soldAt, req.DueDate)
		if err != nil {
			return err
		}

		containers := newContainerSet(repos.Containers())
		for _, line := range req.Lines {
			c, err := containers.get(ctx, line.ContainerID)
			if err != nil {
				return err
			}
			item, err := sellableItem(c, line.ProductID)
			if err != nil {
				return err
			}
			price, err := resolvePrice(item, line.UnitPriceUSD)
			if err != nil {
				return err
			}

			// Freeze the unit cost before the deduction: the
			// allocation pipeline raises it once stock leaves.
			cost := item.CostPerUnitUSD
			if err := c.DeductStock(line.ProductID, line.Quantity); err != nil {
				return err
			}
			if _, err := sale.AddLine(c.ID, line.ProductID, item.ProductName, line.Quantity, cost, price); err != nil {
				return err
			}
			c.AddRealizedMargin(price.Sub(cost).Mul(line.Quantity))
		}

		if err := sale.Finalize(req.PaidNowUSD, soldAt); err != nil {
			return err
		}

		if deferred := sale.UnpaidPortion(); deferred.IsPositive() {
			if err := client.CheckCredit(deferred); err != nil {
				return err
			}
			if err := client.IncreaseDebt(deferred); err != nil {
				return err
			}
		}

		if err := containers.saveAll(ctx); err != nil {
			return err
		}
		if err := repos.Clients().SaveWithLock(ctx, client); err != nil {
			return err
		}
		if err := repos.Sales().Save(ctx, sale); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"sale.create", sales.AggregateTypeSale, sale.ID, actor.UserID,
			map[string]any{"number": sale.Number, "client": client.Code, "total_usd": sale.TotalAmountUSD.String()},
		)); err != nil {
			return err
		}

		resp = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrSaleNumber, resp.Number)
	return &resp, nil
}

// AddPayment settles debt against a sale. The amount is capped at the
// open debt and the client's rolling debt drops by what was actually
// taken.
func (s *Service) AddPayment(ctx context.Context, saleID uuid.UUID, req AddPaymentRequest, actor appshared.Actor) (*SaleResponse, error) {
	paidAt := time.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	var resp SaleResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if _, err := period.EnsureOpenForDate(ctx, repos.Periods(), paidAt); err != nil {
			return err
		}
		sale, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		payment, err := sale.AddPayment(req.AmountUSD, req.Method, paidAt)
		if err != nil {
			return err
		}

		client, err := repos.Clients().FindByID(ctx, sale.ClientID)
		if err != nil {
			return err
		}
		if err := client.ReduceDebt(payment.AmountUSD); err != nil {
			return err
		}

		if err := repos.Sales().SaveWithLock(ctx, sale); err != nil {
			return err
		}
		if err := repos.Clients().SaveWithLock(ctx, client); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"sale.payment", sales.AggregateTypeSale, sale.ID, actor.UserID,
			map[string]any{"number": sale.Number, "amount_usd": payment.AmountUSD.String(), "method": payment.Method},
		)); err != nil {
			return err
		}

		resp = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateReturn takes goods back: stock returns to the source
// containers at the frozen cost, realized margin reverses, and the
// client's debt drops by however much the sale's debt shrank.
func (s *Service) CreateReturn(ctx context.Context, saleID uuid.UUID, req CreateReturnRequest, actor appshared.Actor) (*SaleResponse, error) {
	var resp SaleResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if _, err := period.EnsureOpenForDate(ctx, repos.Periods(), time.Now()); err != nil {
			return err
		}
		sale, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		debtBefore := sale.DebtAmountUSD

		number, err := repos.Numbers().NextDocumentNumber(ctx, "RET")
		if err != nil {
			return err
		}
		lines := make([]sales.ReturnLine, 0, len(req.Lines))
		for _, l := range req.Lines {
			lines = append(lines, sales.ReturnLine{SaleItemID: l.SaleItemID, Quantity: l.Quantity})
		}
		ret, err := sale.ApplyReturn(number, lines, time.Now())
		if err != nil {
			return err
		}

		containers := newContainerSet(repos.Containers())
		if err := s.restockReturn(ctx, containers, sale, ret); err != nil {
			return err
		}

		if err := s.settleDebtDelta(ctx, repos, sale, debtBefore); err != nil {
			return err
		}

		if err := containers.saveAll(ctx); err != nil {
			return err
		}
		if err := repos.Sales().SaveWithLock(ctx, sale); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"sale.return", sales.AggregateTypeSale, sale.ID, actor.UserID,
			map[string]any{"number": sale.Number, "return_number": ret.Number, "total_usd": ret.TotalUSD.String()},
		)); err != nil {
			return err
		}

		resp = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateExchange swaps returned goods for replacement lines in one
// atomic step. The sale total is rebuilt from the surviving lines, so
// the client may end up owing more or less than before; an increase is
// re-checked against the credit limit.
func (s *Service) CreateExchange(ctx context.Context, saleID uuid.UUID, req CreateExchangeRequest, actor appshared.Actor) (*SaleResponse, error) {
	var resp SaleResponse
	err := s.scope.Execute(ctx, func(repos appshared.TransactionalRepositories) error {
		if _, err := period.EnsureOpenForDate(ctx, repos.Periods(), time.Now()); err != nil {
			return err
		}
		sale, err := repos.Sales().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		debtBefore := sale.DebtAmountUSD

		containers := newContainerSet(repos.Containers())

		// Resolve the add leg against live stock before touching the
		// sale, freezing cost and price per line.
		addLines := make([]sales.ExchangeAddLine, 0, len(req.AddLines))
		for _, l := range req.AddLines {
			c, err := containers.get(ctx, l.ContainerID)
			if err != nil {
				return err
			}
			item, err := sellableItem(c, l.ProductID)
			if err != nil {
				return err
			}
			price, err := resolvePrice(item, l.UnitPriceUSD)
			if err != nil {
				return err
			}
			addLines = append(addLines, sales.ExchangeAddLine{
				ContainerID: c.ID,
				ProductID:   l.ProductID,
				ProductName: item.ProductName,
				Quantity:    l.Quantity,
				CostPerUnit: item.CostPerUnitUSD,
				SalePrice:   price,
			})
		}

		number, err := repos.Numbers().NextDocumentNumber(ctx, "RET")
		if err != nil {
			return err
		}
		returnLines := make([]sales.ReturnLine, 0, len(req.ReturnLines))
		for _, l := range req.ReturnLines {
			returnLines = append(returnLines, sales.ReturnLine{SaleItemID: l.SaleItemID, Quantity: l.Quantity})
		}

		ret, added, err := sale.ApplyExchange(number, returnLines, addLines, time.Now())
		if err != nil {
			return err
		}

		if err := s.restockReturn(ctx, containers, sale, ret); err != nil {
			return err
		}
		for i := range added {
			item := &added[i]
			c, err := containers.get(ctx, item.ContainerID)
			if err != nil {
				return err
			}
			if err := c.DeductStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
			c.AddRealizedMargin(item.SalePricePerUnitUSD.Sub(item.CostPerUnitUSD).Mul(item.Quantity))
		}

		if err := s.settleDebtDelta(ctx, repos, sale, debtBefore); err != nil {
			return err
		}

		if err := containers.saveAll(ctx); err != nil {
			return err
		}
		if err := repos.Sales().SaveWithLock(ctx, sale); err != nil {
			return err
		}
		if err := repos.Audit().Record(ctx, shared.NewAuditEntry(
			"sale.exchange", sales.AggregateTypeSale, sale.ID, actor.UserID,
			map[string]any{"number": sale.Number, "return_number": ret.Number},
		)); err != nil {
			return err
		}

		resp = ToSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// restockReturn puts returned quantities back on their source
// containers and reverses the realized margin of each returned line at
// its frozen prices.
func (s *Service) restockReturn(ctx context.Context, containers *containerSet, sale *sales.Sale, ret *sales.SaleReturn) error {
	for i := range ret.Items {
		line := &ret.Items[i]
		c, err := containers.get(ctx, line.ContainerID)
		if err != nil {
			return err
		}
		if err := c.RestoreStock(line.ProductID, line.Quantity); err != nil {
			return err
		}
		item := saleItemByID(sale, line.SaleItemID)
		if item == nil {
			return shared.ErrNotFound
		}
		c.AddRealizedMargin(item.CostPerUnitUSD.Sub(item.SalePricePerUnitUSD).Mul(line.Quantity))
	}
	return nil
}

// settleDebtDelta moves the client's rolling debt by however much the
// sale's debt changed. An increase runs through the credit check
// first.
func (s *Service) settleDebtDelta(ctx context.Context, repos appshared.TransactionalRepositories, sale *sales.Sale, debtBefore decimal.Decimal) error {
	delta := sale.DebtAmountUSD.Sub(debtBefore)
	if delta.IsZero() {
		return nil
	}
	client, err := repos.Clients().FindByID(ctx, sale.ClientID)
	if err != nil {
		return err
	}
	if delta.IsPositive() {
		if err := client.CheckCredit(delta); err != nil {
			return err
		}
		if err := client.IncreaseDebt(delta); err != nil {
			return err
		}
	} else if err := client.ReduceDebt(delta.Neg()); err != nil {
		return err
	}
	return repos.Clients().SaveWithLock(ctx, client)
}

// saleItemByID finds a sold line on the sale, or nil
func saleItemByID(sale *sales.Sale, itemID uuid.UUID) *sales.SaleItem {
	for i := range sale.Items {
		if sale.Items[i].ID == itemID {
			return &sale.Items[i]
		}
	}
	return nil
}
