package container

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// ContainerStatus lifecycle is strictly monotonic.
type ContainerStatus string

const (
	ContainerStatusInTransit ContainerStatus = "IN_TRANSIT"
	ContainerStatusArrived   ContainerStatus = "ARRIVED"
	ContainerStatusClosed    ContainerStatus = "CLOSED"
)

func (s ContainerStatus) IsValid() bool {
	switch s {
	case ContainerStatusInTransit, ContainerStatusArrived, ContainerStatusClosed:
		return true
	}
	return false
}

func (s ContainerStatus) String() string {
	return string(s)
}

// CanTransitionTo allows forward transitions only. A closed container
// never reopens.
func (s ContainerStatus) CanTransitionTo(target ContainerStatus) bool {
	switch s {
	case ContainerStatusInTransit:
		return target == ContainerStatusArrived
	case ContainerStatusArrived:
		return target == ContainerStatusClosed
	default:
		return false
	}
}

// PayoutEpsilon is the tolerance in USD applied when validating an
// investor payout against the remaining payable balance. The server
// overrides it at startup from the settlement configuration.
var PayoutEpsilon = decimal.RequireFromString("0.0001")

// moneyScale is the rounding scale for USD money columns.
const moneyScale = 2

// unitCostScale is the rounding scale for the derived per-unit cost.
const unitCostScale = 4

// shareScale is the rounding scale for investor percentage shares.
const shareScale = 4

// Container is the aggregate root for a single import shipment. It owns
// the stock lines, the expense ledger, the investment register and the
// payout history, and keeps its derived financial columns consistent
// through RecalculateFinancials.
type Container struct {
	shared.BaseAggregateRoot
	Number           string
	Status           ContainerStatus
	TotalPurchaseCNY decimal.Decimal
	ExchangeRate     decimal.Decimal
	// Derived columns. Recomputed as a whole, never patched piecemeal.
	TotalPurchaseUSD decimal.Decimal
	TotalExpensesUSD decimal.Decimal
	NetProfitUSD     decimal.Decimal

	Items       []ContainerItem
	Expenses    []ContainerExpense
	Investments []ContainerInvestment
	Payouts     []InvestorPayout

	ArrivedAt *time.Time
	ClosedAt  *time.Time
}

// ContainerItem is a stock line. Quantity is the live remaining stock;
// CostPerUnitUSD is the weighted-average cost shared by every line of
// the container after each recompute.
type ContainerItem struct {
	ID             uuid.UUID
	ContainerID    uuid.UUID
	ProductID      uuid.UUID
	ProductName    string
	ProductCode    string
	Quantity       decimal.Decimal
	CostPerUnitUSD decimal.Decimal
	// Optional per-line overrides in USD per unit.
	PurchasePriceOverrideUSD *decimal.Decimal
	SalePriceOverrideUSD     *decimal.Decimal
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// NewContainer creates a shipment in transit with zeroed financials.
func NewContainer(number string) (*Container, error) {
	if number == "" {
		return nil, &shared.DomainError{
			Code:    "INVALID_CONTAINER_NUMBER",
			Message: "container number is required",
		}
	}

	c := &Container{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Status:            ContainerStatusInTransit,
		TotalPurchaseCNY:  decimal.Zero,
		ExchangeRate:      decimal.Zero,
		TotalPurchaseUSD:  decimal.Zero,
		TotalExpensesUSD:  decimal.Zero,
		NetProfitUSD:      decimal.Zero,
		Items:             []ContainerItem{},
		Expenses:          []ContainerExpense{},
		Investments:       []ContainerInvestment{},
		Payouts:           []InvestorPayout{},
	}

	c.AddDomainEvent(NewContainerCreatedEvent(c.ID, number))
	return c, nil
}

func (c *Container) IsClosed() bool {
	return c.Status == ContainerStatusClosed
}

// MarkArrived moves the shipment to ARRIVED. Stock becomes sellable and
// expenses and investments can be registered from this point.
func (c *Container) MarkArrived() error {
	if !c.Status.CanTransitionTo(ContainerStatusArrived) {
		return &shared.DomainError{
			Code:    "INVALID_STATUS_TRANSITION",
			Message: "container cannot transition from " + c.Status.String() + " to " + ContainerStatusArrived.String(),
		}
	}

	now := time.Now()
	c.Status = ContainerStatusArrived
	c.ArrivedAt = &now
	c.UpdatedAt = now
	c.AddDomainEvent(NewContainerArrivedEvent(c.ID, c.Number))
	return nil
}

// Close ends the container lifecycle. All mutating operations reject a
// closed container.
func (c *Container) Close() error {
	if !c.Status.CanTransitionTo(ContainerStatusClosed) {
		return &shared.DomainError{
			Code:    "INVALID_STATUS_TRANSITION",
			Message: "container cannot transition from " + c.Status.String() + " to " + ContainerStatusClosed.String(),
		}
	}

	now := time.Now()
	c.Status = ContainerStatusClosed
	c.ClosedAt = &now
	c.UpdatedAt = now
	c.AddDomainEvent(NewContainerClosedEvent(c.ID, c.Number))
	return nil
}

func (c *Container) rejectClosed() error {
	if c.IsClosed() {
		return &shared.DomainError{
			Code:    "CONTAINER_CLOSED",
			Message: "container " + c.Number + " is closed",
		}
	}
	return nil
}

// SetPurchase records the aggregate purchase figure in CNY together with
// the CNY-per-USD exchange rate and recomputes the derived totals.
func (c *Container) SetPurchase(totalCNY, exchangeRate decimal.Decimal) error {
	if err := c.rejectClosed(); err != nil {
		return err
	}
	if totalCNY.IsNegative() {
		return &shared.DomainError{
			Code:    "INVALID_PURCHASE_TOTAL",
			Message: "purchase total cannot be negative",
		}
	}
	if exchangeRate.IsNegative() || (totalCNY.IsPositive() && exchangeRate.IsZero()) {
		return &shared.DomainError{
			Code:    "INVALID_EXCHANGE_RATE",
			Message: "exchange rate must be positive when a purchase total is set",
		}
	}

	c.TotalPurchaseCNY = totalCNY
	c.ExchangeRate = exchangeRate
	c.RecalculateFinancials()
	c.UpdatedAt = time.Now()
	return nil
}

// ItemByProduct returns the stock line for the product, or nil.
func (c *Container) ItemByProduct(productID uuid.UUID) *ContainerItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem registers stock for a product. A second add for the same
// product merges into the existing line instead of creating a duplicate;
// overrides, when provided, replace the line's current ones.
func (c *Container) AddItem(productID uuid.UUID, name, code string, quantity decimal.Decimal, purchaseOverride, saleOverride *decimal.Decimal) error {
	if err := c.rejectClosed(); err != nil {
		return err
	}
	if quantity.IsNegative() || quantity.IsZero() {
		return &shared.DomainError{
			Code:    "INVALID_QUANTITY",
			Message: "item quantity must be positive",
		}
	}
	if purchaseOverride != nil && purchaseOverride.IsNegative() {
		return &shared.DomainError{
			Code:    "INVALID_PRICE",
			Message: "purchase price override cannot be negative",
		}
	}
	if saleOverride != nil && saleOverride.IsNegative() {
		return &shared.DomainError{
			Code:    "INVALID_PRICE",
			Message: "sale price override cannot be negative",
		}
	}

	now := time.Now()
	if existing := c.ItemByProduct(productID); existing != nil {
		existing.Quantity = existing.Quantity.Add(quantity)
		if purchaseOverride != nil {
			existing.PurchasePriceOverrideUSD = purchaseOverride
		}
		if saleOverride != nil {
			existing.SalePriceOverrideUSD = saleOverride
		}
		existing.UpdatedAt = now
	} else {
		c.Items = append(c.Items, ContainerItem{
			ID:                       uuid.New(),
			ContainerID:              c.ID,
			ProductID:                productID,
			ProductName:              name,
			ProductCode:              code,
			Quantity:                 quantity,
			CostPerUnitUSD:           decimal.Zero,
			PurchasePriceOverrideUSD: purchaseOverride,
			SalePriceOverrideUSD:     saleOverride,
			CreatedAt:                now,
			UpdatedAt:                now,
		})
	}

	c.RecalculateFinancials()
	c.UpdatedAt = time.Now()
	return nil
}

// AddManualStock increments the live quantity of an existing line. Used
// for stock found outside the purchase flow.
func (c *Container) AddManualStock(productID uuid.UUID, quantity decimal.Decimal) error {
	if err := c.rejectClosed(); err != nil {
		return err
	}
	if quantity.IsNegative() || quantity.IsZero() {
		return &shared.DomainError{
			Code:    "INVALID_QUANTITY",
			Message: "manual stock quantity must be positive",
		}
	}

	item := c.ItemByProduct(productID)
	if item == nil {
		return shared.ErrNotFound
	}

	item.Quantity = item.Quantity.Add(quantity)
	item.UpdatedAt = time.Now()
	c.RecalculateFinancials()
	c.UpdatedAt = time.Now()
	return nil
}

// DeductStock removes sold quantity from a line. The caller freezes the
// line's current CostPerUnitUSD before calling; the recompute that
// follows only affects future sales.
func (c *Container) DeductStock(productID uuid.UUID, quantity decimal.Decimal) error {
	if err := c.rejectClosed(); err != nil {
		return err
	}

	item := c.ItemByProduct(productID)
	if item == nil {
		return shared.ErrNotFound
	}
	if item.Quantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}

	item.Quantity = item.Quantity.Sub(quantity)
	item.UpdatedAt = time.Now()
	c.RecalculateFinancials()
	c.UpdatedAt = time.Now()
	return nil
}

// RestoreStock puts returned quantity back on a line.
func (c *Container) RestoreStock(productID uuid.UUID, quantity decimal.Decimal) error {
	if err := c.rejectClosed(); err != nil {
		return err
	}

	item := c.ItemByProduct(productID)
	if item == nil {
		return shared.ErrNotFound
	}

	item.Quantity = item.Quantity.Add(quantity)
	item.UpdatedAt = time.Now()
	c.RecalculateFinancials()
	c.UpdatedAt = time.Now()
	return nil
}

// AddRealizedMargin folds a realized sale margin (or its reversal on
// return) into the container's net profit.
func (c *Container) AddRealizedMargin(delta decimal.Decimal) {
	c.NetProfitUSD = c.NetProfitUSD.Add(delta)
	c.UpdatedAt = time.Now()
}

// TotalQuantity is the live remaining stock across all lines.
func (c *Container) TotalQuantity() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		total = total.Add(c.Items[i].Quantity)
	}
	return total
}

// itemPurchaseContributions sums override-priced purchase value across
// the lines. Lines without an override contribute nothing.
func (c *Container) itemPurchaseContributions() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Items {
		if c.Items[i].PurchasePriceOverrideUSD != nil {
			total = total.Add(c.Items[i].PurchasePriceOverrideUSD.Mul(c.Items[i].Quantity))
		}
	}
	return total
}

// effectiveExpenseTotal sums expense amounts plus every correction
// delta, confirmed or not. Confirmation gates period closure, not the
// arithmetic.
func (c *Container) effectiveExpenseTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Expenses {
		total = total.Add(c.Expenses[i].EffectiveAmount())
	}
	return total
}

// RecalculateFinancials rebuilds every derived column in a fixed order:
// purchase USD, expense total, weighted-average unit cost, investor
// shares. Idempotent for unchanged inputs.
func (c *Container) RecalculateFinancials() {
	// Purchase conversion. The converted figure is floored at the sum
	// of per-line purchase contributions so line overrides can never
	// exceed the container total.
	purchase := decimal.Zero
	if c.TotalPurchaseCNY.IsPositive() && c.ExchangeRate.IsPositive() {
		purchase = c.TotalPurchaseCNY.Div(c.ExchangeRate).Round(moneyScale)
	}
	if contributions := c.itemPurchaseContributions(); purchase.LessThan(contributions) {
		purchase = contributions
	}
	c.TotalPurchaseUSD = purchase

	c.TotalExpensesUSD = c.effectiveExpenseTotal()

	// Weighted-average unit cost over the live remaining quantity. The
	// divisor shrinks as stock sells, so the unit cost of what remains
	// rises. A fully depleted container keeps the last computed cost.
	totalQty := c.TotalQuantity()
	if totalQty.IsPositive() {
		unit := c.TotalPurchaseUSD.Add(c.TotalExpensesUSD).Div(totalQty).Round(unitCostScale)
		for i := range c.Items {
			c.Items[i].CostPerUnitUSD = unit
		}
	}

	c.recalculateShares()
}

// PayablePool is the cost basis owed back to investors before profit:
// purchase plus expenses.
func (c *Container) PayablePool() decimal.Decimal {
	return c.TotalPurchaseUSD.Add(c.TotalExpensesUSD)
}
