package container

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/shared"
)

// ContainerInvestment is one investor's stake in a container. Repeated
// contributions accumulate on a single row per investor; the percentage
// share is derived, never entered.
type ContainerInvestment struct {
	ID              uuid.UUID
	ContainerID     uuid.UUID
	InvestorID      uuid.UUID
	InvestorName    string
	AmountUSD       decimal.Decimal
	PercentageShare decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// InvestorPayout is an append-only settlement record. Payouts are never
// edited or deleted.
type InvestorPayout struct {
	ID          uuid.UUID
	ContainerID uuid.UUID
	InvestorID  uuid.UUID
	AmountUSD   decimal.Decimal
	Note        string
	PaidAt      time.Time
	CreatedAt   time.Time
}

// InvestmentByInvestor returns the accumulated stake row for the
// investor, or nil.
func (c *Container) InvestmentByInvestor(investorID uuid.UUID) *ContainerInvestment {
	for i := range c.Investments {
		if c.Investments[i].InvestorID == investorID {
			return &c.Investments[i]
		}
	}
	return nil
}

// AddInvestment records a capital contribution. A second contribution
// from the same investor accumulates on the existing row, after which
// every share is rederived.
func (c *Container) AddInvestment(investorID uuid.UUID, investorName string, amountUSD decimal.Decimal) (*ContainerInvestment, error) {
	if err := c.rejectClosed(); err != nil {
		return nil, err
	}
	if !amountUSD.IsPositive() {
		return nil, &shared.DomainError{
			Code:    "INVALID_INVESTMENT",
			Message: "investment amount must be positive",
		}
	}

	now := time.Now()
	investment := c.InvestmentByInvestor(investorID)
	if investment != nil {
		investment.AmountUSD = investment.AmountUSD.Add(amountUSD)
		investment.UpdatedAt = now
	} else {
		c.Investments = append(c.Investments, ContainerInvestment{
			ID:              uuid.New(),
			ContainerID:     c.ID,
			InvestorID:      investorID,
			InvestorName:    investorName,
			AmountUSD:       amountUSD,
			PercentageShare: decimal.Zero,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		investment = &c.Investments[len(c.Investments)-1]
	}

	c.recalculateShares()
	c.UpdatedAt = now
	c.AddDomainEvent(NewInvestmentAddedEvent(c.ID, investorID, amountUSD))
	return investment, nil
}

// recalculateShares rederives every investor's percentage from the
// accumulated amounts. With nothing invested the shares are left as
// they are.
func (c *Container) recalculateShares() {
	total := decimal.Zero
	for i := range c.Investments {
		total = total.Add(c.Investments[i].AmountUSD)
	}
	if !total.IsPositive() {
		return
	}
	hundred := decimal.NewFromInt(100)
	for i := range c.Investments {
		c.Investments[i].PercentageShare = c.Investments[i].AmountUSD.Div(total).Mul(hundred).Round(shareScale)
	}
}

// TotalInvested is the sum of all accumulated stakes.
func (c *Container) TotalInvested() decimal.Decimal {
	total := decimal.Zero
	for i := range c.Investments {
		total = total.Add(c.Investments[i].AmountUSD)
	}
	return total
}

// TotalPaidOut sums the payout history for one investor.
func (c *Container) TotalPaidOut(investorID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for i := range c.Payouts {
		if c.Payouts[i].InvestorID == investorID {
			total = total.Add(c.Payouts[i].AmountUSD)
		}
	}
	return total
}

// PayableShare is the investor's slice of the payable pool (purchase
// plus expenses), before payouts.
func (c *Container) PayableShare(investorID uuid.UUID) decimal.Decimal {
	investment := c.InvestmentByInvestor(investorID)
	if investment == nil {
		return decimal.Zero
	}
	return c.PayablePool().Mul(investment.PercentageShare).Div(decimal.NewFromInt(100)).Round(moneyScale)
}

// AvailablePayout is the investor's payable share minus what has already
// been paid out, floored at zero.
func (c *Container) AvailablePayout(investorID uuid.UUID) decimal.Decimal {
	remaining := c.PayableShare(investorID).Sub(c.TotalPaidOut(investorID))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ProfitShare is the investor's slice of the container's net profit,
// informational until the profit distribution flow runs.
func (c *Container) ProfitShare(investorID uuid.UUID) decimal.Decimal {
	investment := c.InvestmentByInvestor(investorID)
	if investment == nil {
		return decimal.Zero
	}
	return c.NetProfitUSD.Mul(investment.PercentageShare).Div(decimal.NewFromInt(100)).Round(moneyScale)
}

// RecordPayout appends a settlement record. The amount is validated
// against the remaining balance with a small tolerance for accumulated
// rounding; on overpay nothing is written.
func (c *Container) RecordPayout(investorID uuid.UUID, amountUSD decimal.Decimal, note string, paidAt time.Time) (*InvestorPayout, error) {
	if !amountUSD.IsPositive() {
		return nil, &shared.DomainError{
			Code:    "INVALID_PAYOUT",
			Message: "payout amount must be positive",
		}
	}
	if c.InvestmentByInvestor(investorID) == nil {
		return nil, shared.ErrNotFound
	}
	if amountUSD.Sub(c.AvailablePayout(investorID)).GreaterThan(PayoutEpsilon) {
		return nil, shared.ErrOverpay
	}

	now := time.Now()
	payout := InvestorPayout{
		ID:          uuid.New(),
		ContainerID: c.ID,
		InvestorID:  investorID,
		AmountUSD:   amountUSD,
		Note:        note,
		PaidAt:      paidAt,
		CreatedAt:   now,
	}
	c.Payouts = append(c.Payouts, payout)
	c.UpdatedAt = now
	c.AddDomainEvent(NewPayoutRecordedEvent(c.ID, investorID, amountUSD))
	return &c.Payouts[len(c.Payouts)-1], nil
}
