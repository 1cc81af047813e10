package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// SaleStatus represents the settlement status of a sale
type SaleStatus string

const (
	SaleStatusDebt          SaleStatus = "DEBT"
	SaleStatusPartiallyPaid SaleStatus = "PARTIALLY_PAID"
	SaleStatusCompleted     SaleStatus = "COMPLETED"
	SaleStatusReturned      SaleStatus = "RETURNED"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusDebt, SaleStatusPartiallyPaid, SaleStatusCompleted, SaleStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// ComputeStatus derives the settlement status from the money columns.
// Full return wins over everything; otherwise zero debt means completed.
func ComputeStatus(total, paid, debt decimal.Decimal, returnedFully bool) SaleStatus {
	switch {
	case returnedFully:
		return SaleStatusReturned
	case debt.LessThanOrEqual(decimal.Zero):
		return SaleStatusCompleted
	case paid.GreaterThan(decimal.Zero):
		return SaleStatusPartiallyPaid
	default:
		return SaleStatusDebt
	}
}

// SaleMode represents how a sale is settled
type SaleMode string

const (
	SaleModeCash        SaleMode = "CASH"
	SaleModeDebt        SaleMode = "DEBT"
	SaleModeConsignment SaleMode = "CONSIGNMENT"
)

// IsValid checks if the mode is a valid SaleMode
func (m SaleMode) IsValid() bool {
	switch m {
	case SaleModeCash, SaleModeDebt, SaleModeConsignment:
		return true
	}
	return false
}

// String returns the string representation of SaleMode
func (m SaleMode) String() string {
	return string(m)
}

// RequiresDueDate reports whether the mode defers settlement
func (m SaleMode) RequiresDueDate() bool {
	return m == SaleModeDebt || m == SaleModeConsignment
}

// SaleItem is a sold line. CostPerUnitUSD and SalePricePerUnitUSD are
// frozen at sale time; later cost recomputation on the container never
// rewrites history.
type SaleItem struct {
	ID                  uuid.UUID
	SaleID              uuid.UUID
	ContainerID         uuid.UUID
	ProductID           uuid.UUID
	ProductName         string
	Quantity            decimal.Decimal
	ReturnedQuantity    decimal.Decimal
	CostPerUnitUSD      decimal.Decimal
	SalePricePerUnitUSD decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// NetQuantity is the sold quantity minus what came back
func (i *SaleItem) NetQuantity() decimal.Decimal {
	return i.Quantity.Sub(i.ReturnedQuantity)
}

// NetAmount is the line's contribution to the sale total
func (i *SaleItem) NetAmount() decimal.Decimal {
	return i.NetQuantity().Mul(i.SalePricePerUnitUSD)
}

// Margin is the realized margin for the net quantity at frozen prices
func (i *SaleItem) Margin() decimal.Decimal {
	return i.SalePricePerUnitUSD.Sub(i.CostPerUnitUSD).Mul(i.NetQuantity())
}

// Payment is an append-only settlement record against a sale
type Payment struct {
	ID        uuid.UUID
	SaleID    uuid.UUID
	AmountUSD decimal.Decimal
	Method    string
	PaidAt    time.Time
	CreatedAt time.Time
}

// SaleReturn groups the lines of one return operation
type SaleReturn struct {
	ID        uuid.UUID
	SaleID    uuid.UUID
	Number    string
	TotalUSD  decimal.Decimal
	Items     []ReturnItem
	CreatedAt time.Time
}

// ReturnItem is one returned line, valued at the frozen sale price
type ReturnItem struct {
	ID          uuid.UUID
	ReturnID    uuid.UUID
	SaleItemID  uuid.UUID
	ContainerID uuid.UUID
	ProductID   uuid.UUID
	Quantity    decimal.Decimal
	AmountUSD   decimal.Decimal
	CreatedAt   time.Time
}

// Sale is the aggregate root of the sales ledger. The money columns
// (total, paid, debt) are all derived by recalculateTotals from the
// items, payments and returns; nothing patches them directly.
type Sale struct {
	shared.BaseAggregateRoot
	Number     string
	ClientID   uuid.UUID
	ClientName string
	Mode       SaleMode
	Status     SaleStatus
	PeriodID   uuid.UUID
	SoldAt     time.Time
	DueDate    *time.Time

	Items    []SaleItem
	Payments []Payment
	Returns  []SaleReturn

	TotalAmountUSD decimal.Decimal
	PaidAmountUSD  decimal.Decimal
	DebtAmountUSD  decimal.Decimal
	// OriginalTotalUSD is the gross value ever sold on this sale
	// (exchange add legs included); the fully-returned flag compares
	// accumulated returns against it.
	OriginalTotalUSD decimal.Decimal
	FullyReturned    bool
}

// NewSale creates a sale shell; lines are added before Finalize.
func NewSale(number string, clientID uuid.UUID, clientName string, mode SaleMode, periodID uuid.UUID, soldAt time.Time, dueDate *time.Time) (*Sale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if !mode.IsValid() {
		return nil, shared.NewDomainError("INVALID_MODE", "Sale mode must be CASH, DEBT or CONSIGNMENT")
	}
	if mode.RequiresDueDate() && dueDate == nil {
		return nil, shared.NewDomainError("DUE_DATE_REQUIRED", "Due date is required for deferred settlement")
	}
	if periodID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Period ID cannot be empty")
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		ClientID:          clientID,
		ClientName:        clientName,
		Mode:              mode,
		Status:            SaleStatusDebt,
		PeriodID:          periodID,
		SoldAt:            soldAt,
		DueDate:           dueDate,
		Items:             []SaleItem{},
		Payments:          []Payment{},
		Returns:           []SaleReturn{},
		TotalAmountUSD:    decimal.Zero,
		PaidAmountUSD:     decimal.Zero,
		DebtAmountUSD:     decimal.Zero,
		OriginalTotalUSD:  decimal.Zero,
	}

	sale.AddDomainEvent(NewSaleCreatedEvent(sale))
	return sale, nil
}

// AddLine adds a sold line with its prices frozen as of now. The stock
// deduction on the container happens alongside in the same transaction.
func (s *Sale) AddLine(containerID, productID uuid.UUID, productName string, quantity, costPerUnit, salePrice decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if salePrice.IsNegative() || costPerUnit.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	now := time.Now()
	item := SaleItem{
		ID:                  uuid.New(),
		SaleID:              s.ID,
		ContainerID:         containerID,
		ProductID:           productID,
		ProductName:         productName,
		Quantity:            quantity,
		ReturnedQuantity:    decimal.Zero,
		CostPerUnitUSD:      costPerUnit,
		SalePricePerUnitUSD: salePrice,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	s.Items = append(s.Items, item)
	s.OriginalTotalUSD = s.OriginalTotalUSD.Add(quantity.Mul(salePrice))
	s.recalculateTotals()
	s.UpdatedAt = now
	return &s.Items[len(s.Items)-1], nil
}

// Finalize records the upfront payment, if any, and settles the
// initial status.
func (s *Sale) Finalize(paidNow decimal.Decimal, at time.Time) error {
	if len(s.Items) == 0 {
		return shared.NewDomainError("EMPTY_SALE", "Sale must have at least one line")
	}
	if paidNow.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Upfront payment cannot be negative")
	}
	if paidNow.GreaterThan(s.TotalAmountUSD) {
		return shared.NewDomainError("INVALID_AMOUNT", "Upfront payment cannot exceed the sale total")
	}

	if paidNow.IsPositive() {
		s.Payments = append(s.Payments, Payment{
			ID:        uuid.New(),
			SaleID:    s.ID,
			AmountUSD: paidNow,
			Method:    "upfront",
			PaidAt:    at,
			CreatedAt: time.Now(),
		})
	}
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	return nil
}

// UnpaidPortion is the amount the sale defers, checked against the
// client's credit limit at creation.
func (s *Sale) UnpaidPortion() decimal.Decimal {
	return s.DebtAmountUSD
}

// AddPayment settles outstanding debt. The requested amount is capped
// at the remaining debt; the capped figure is returned so the caller
// can report what was actually taken.
func (s *Sale) AddPayment(requested decimal.Decimal, method string, at time.Time) (*Payment, error) {
	if requested.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if s.DebtAmountUSD.LessThanOrEqual(decimal.Zero) {
		return nil, shared.ErrNoDebt
	}

	actual := requested
	if actual.GreaterThan(s.DebtAmountUSD) {
		actual = s.DebtAmountUSD
	}

	payment := Payment{
		ID:        uuid.New(),
		SaleID:    s.ID,
		AmountUSD: actual,
		Method:    method,
		PaidAt:    at,
		CreatedAt: time.Now(),
	}
	s.Payments = append(s.Payments, payment)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewPaymentReceivedEvent(s, actual))
	return &s.Payments[len(s.Payments)-1], nil
}

// ReturnLine requests a quantity back against one sold line
type ReturnLine struct {
	SaleItemID uuid.UUID
	Quantity   decimal.Decimal
}

// itemByID returns the sold line, or nil
func (s *Sale) itemByID(itemID uuid.UUID) *SaleItem {
	for i := range s.Items {
		if s.Items[i].ID == itemID {
			return &s.Items[i]
		}
	}
	return nil
}

// ApplyReturn processes a return against sold lines. Each line may
// return at most what remains un-returned; stock restoration on the
// containers is the caller's half of the same transaction.
func (s *Sale) ApplyReturn(number string, lines []ReturnLine, at time.Time) (*SaleReturn, error) {
	if s.FullyReturned {
		return nil, shared.NewDomainError("ALREADY_RETURNED", "Sale is already fully returned")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_RETURN", "Return must have at least one line")
	}

	ret := SaleReturn{
		ID:        uuid.New(),
		SaleID:    s.ID,
		Number:    number,
		TotalUSD:  decimal.Zero,
		Items:     []ReturnItem{},
		CreatedAt: at,
	}

	// Validate every line before touching anything.
	for _, line := range lines {
		item := s.itemByID(line.SaleItemID)
		if item == nil {
			return nil, shared.ErrNotFound
		}
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Return quantity must be positive")
		}
		if line.Quantity.GreaterThan(item.NetQuantity()) {
			return nil, shared.NewDomainError("OVER_RETURN", "Return quantity exceeds remaining sold quantity for "+item.ProductName)
		}
	}

	for _, line := range lines {
		item := s.itemByID(line.SaleItemID)
		item.ReturnedQuantity = item.ReturnedQuantity.Add(line.Quantity)
		item.UpdatedAt = time.Now()

		amount := line.Quantity.Mul(item.SalePricePerUnitUSD)
		ret.TotalUSD = ret.TotalUSD.Add(amount)
		ret.Items = append(ret.Items, ReturnItem{
			ID:          uuid.New(),
			ReturnID:    ret.ID,
			SaleItemID:  item.ID,
			ContainerID: item.ContainerID,
			ProductID:   item.ProductID,
			Quantity:    line.Quantity,
			AmountUSD:   amount,
			CreatedAt:   time.Now(),
		})
	}

	s.Returns = append(s.Returns, ret)
	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewReturnProcessedEvent(s, ret.TotalUSD))
	return &s.Returns[len(s.Returns)-1], nil
}

// ExchangeAddLine is a new sold line added by the add leg of an
// exchange
type ExchangeAddLine struct {
	ContainerID uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	CostPerUnit decimal.Decimal
	SalePrice   decimal.Decimal
}

// ApplyExchange runs a return leg and an add leg as one step on the
// aggregate. The caller wraps both stock movements in the same
// transaction; any error here means nothing was applied.
func (s *Sale) ApplyExchange(returnNumber string, returnLines []ReturnLine, addLines []ExchangeAddLine, at time.Time) (*SaleReturn, []SaleItem, error) {
	if len(addLines) == 0 {
		return nil, nil, shared.NewDomainError("EMPTY_EXCHANGE", "Exchange must add at least one line")
	}
	for _, line := range addLines {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, nil, shared.NewDomainError("INVALID_QUANTITY", "Exchange quantity must be positive")
		}
		if line.SalePrice.IsNegative() || line.CostPerUnit.IsNegative() {
			return nil, nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
		}
	}

	ret, err := s.ApplyReturn(returnNumber, returnLines, at)
	if err != nil {
		return nil, nil, err
	}

	added := make([]SaleItem, 0, len(addLines))
	for _, line := range addLines {
		item, err := s.AddLine(line.ContainerID, line.ProductID, line.ProductName, line.Quantity, line.CostPerUnit, line.SalePrice)
		if err != nil {
			return nil, nil, err
		}
		added = append(added, *item)
	}

	s.recalculateTotals()
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewExchangeProcessedEvent(s, ret.TotalUSD))
	return ret, added, nil
}

// RealizedMargin is the sale's current realized margin at frozen
// prices, net of returns.
func (s *Sale) RealizedMargin() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].Margin())
	}
	return total
}

// totalReturned sums every return booked against the sale
func (s *Sale) totalReturned() decimal.Decimal {
	total := decimal.Zero
	for i := range s.Returns {
		total = total.Add(s.Returns[i].TotalUSD)
	}
	return total
}

// recalculateTotals rederives total, paid, debt, the fully-returned
// flag and the status from the children. Paid is capped at the current
// total so returns release overpayment into the refund the caller
// issues.
func (s *Sale) recalculateTotals() {
	total := decimal.Zero
	for i := range s.Items {
		total = total.Add(s.Items[i].NetAmount())
	}

	paid := decimal.Zero
	for i := range s.Payments {
		paid = paid.Add(s.Payments[i].AmountUSD)
	}
	if paid.GreaterThan(total) {
		paid = total
	}

	debt := total.Sub(paid)
	if debt.IsNegative() {
		debt = decimal.Zero
	}

	s.TotalAmountUSD = total
	s.PaidAmountUSD = paid
	s.DebtAmountUSD = debt
	s.FullyReturned = s.OriginalTotalUSD.IsPositive() && s.totalReturned().GreaterThanOrEqual(s.OriginalTotalUSD)
	s.Status = ComputeStatus(total, paid, debt, s.FullyReturned)
}
