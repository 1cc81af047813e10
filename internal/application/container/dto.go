package container

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/container"
)

// CreateContainerRequest registers a new shipment
type CreateContainerRequest struct {
	// Number is optional; when empty a CNT-prefixed document number is
	// issued.
	Number string `json:"number"`
}

// SetPurchaseRequest records the aggregate purchase figure
type SetPurchaseRequest struct {
	TotalCNY     decimal.Decimal `json:"total_cny" binding:"required"`
	ExchangeRate decimal.Decimal `json:"exchange_rate" binding:"required"`
}

// AddItemRequest registers stock for a product
type AddItemRequest struct {
	ProductID        uuid.UUID        `json:"product_id" binding:"required"`
	ProductName      string           `json:"product_name" binding:"required"`
	ProductCode      string           `json:"product_code"`
	Quantity         decimal.Decimal  `json:"quantity" binding:"required"`
	PurchaseOverride *decimal.Decimal `json:"purchase_price_override_usd,omitempty"`
	SaleOverride     *decimal.Decimal `json:"sale_price_override_usd,omitempty"`
}

// AddManualStockRequest increments an existing stock line
type AddManualStockRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// AddExpenseRequest books a cost entry
type AddExpenseRequest struct {
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description"`
	AmountUSD   decimal.Decimal `json:"amount_usd" binding:"required"`
	IncurredAt  *time.Time      `json:"incurred_at,omitempty"`
}

// AddCorrectionRequest books a signed adjustment against an expense
type AddCorrectionRequest struct {
	DeltaUSD decimal.Decimal `json:"delta_usd" binding:"required"`
	Reason   string          `json:"reason" binding:"required"`
}

// AddInvestmentRequest records a capital contribution
type AddInvestmentRequest struct {
	InvestorID uuid.UUID       `json:"investor_id" binding:"required"`
	AmountUSD  decimal.Decimal `json:"amount_usd" binding:"required"`
}

// RecordPayoutRequest settles capital back to an investor
type RecordPayoutRequest struct {
	InvestorID uuid.UUID       `json:"investor_id" binding:"required"`
	AmountUSD  decimal.Decimal `json:"amount_usd" binding:"required"`
	Note       string          `json:"note"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}

// ItemResponse is the API view of a stock line
type ItemResponse struct {
	ID                       uuid.UUID        `json:"id"`
	ProductID                uuid.UUID        `json:"product_id"`
	ProductName              string           `json:"product_name"`
	ProductCode              string           `json:"product_code"`
	Quantity                 decimal.Decimal  `json:"quantity"`
	CostPerUnitUSD           decimal.Decimal  `json:"cost_per_unit_usd"`
	PurchasePriceOverrideUSD *decimal.Decimal `json:"purchase_price_override_usd,omitempty"`
	SalePriceOverrideUSD     *decimal.Decimal `json:"sale_price_override_usd,omitempty"`
}

// ExpenseResponse is the API view of an expense with its corrections
type ExpenseResponse struct {
	ID           uuid.UUID            `json:"id"`
	PeriodID     uuid.UUID            `json:"period_id"`
	Category     string               `json:"category"`
	Description  string               `json:"description"`
	AmountUSD    decimal.Decimal      `json:"amount_usd"`
	EffectiveUSD decimal.Decimal      `json:"effective_usd"`
	IncurredAt   time.Time            `json:"incurred_at"`
	Corrections  []CorrectionResponse `json:"corrections"`
}

// CorrectionResponse is the API view of an expense correction
type CorrectionResponse struct {
	ID          uuid.UUID       `json:"id"`
	PeriodID    uuid.UUID       `json:"period_id"`
	DeltaUSD    decimal.Decimal `json:"delta_usd"`
	Reason      string          `json:"reason"`
	Confirmed   bool            `json:"confirmed"`
	ConfirmedAt *time.Time      `json:"confirmed_at,omitempty"`
}

// InvestmentResponse is the API view of an investor stake
type InvestmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvestorID      uuid.UUID       `json:"investor_id"`
	InvestorName    string          `json:"investor_name"`
	AmountUSD       decimal.Decimal `json:"amount_usd"`
	PercentageShare decimal.Decimal `json:"percentage_share"`
}

// PayoutResponse is the API view of a settlement record
type PayoutResponse struct {
	ID         uuid.UUID       `json:"id"`
	InvestorID uuid.UUID       `json:"investor_id"`
	AmountUSD  decimal.Decimal `json:"amount_usd"`
	Note       string          `json:"note"`
	PaidAt     time.Time       `json:"paid_at"`
}

// PayableResponse is the settlement position of one investor on one
// container
type PayableResponse struct {
	ContainerID     uuid.UUID       `json:"container_id"`
	InvestorID      uuid.UUID       `json:"investor_id"`
	PayablePoolUSD  decimal.Decimal `json:"payable_pool_usd"`
	PercentageShare decimal.Decimal `json:"percentage_share"`
	ShareUSD        decimal.Decimal `json:"share_usd"`
	PaidOutUSD      decimal.Decimal `json:"paid_out_usd"`
	AvailableUSD    decimal.Decimal `json:"available_usd"`
	ProfitShareUSD  decimal.Decimal `json:"profit_share_usd"`
}

// ContainerResponse is the API view of a container with children
type ContainerResponse struct {
	ID               uuid.UUID            `json:"id"`
	Number           string               `json:"number"`
	Status           string               `json:"status"`
	TotalPurchaseCNY decimal.Decimal      `json:"total_purchase_cny"`
	ExchangeRate     decimal.Decimal      `json:"exchange_rate"`
	TotalPurchaseUSD decimal.Decimal      `json:"total_purchase_usd"`
	TotalExpensesUSD decimal.Decimal      `json:"total_expenses_usd"`
	NetProfitUSD     decimal.Decimal      `json:"net_profit_usd"`
	ArrivedAt        *time.Time           `json:"arrived_at,omitempty"`
	ClosedAt         *time.Time           `json:"closed_at,omitempty"`
	Items            []ItemResponse       `json:"items"`
	Expenses         []ExpenseResponse    `json:"expenses"`
	Investments      []InvestmentResponse `json:"investments"`
	Payouts          []PayoutResponse     `json:"payouts"`
}

// ToContainerResponse maps a container aggregate to its API view
func ToContainerResponse(c *container.Container) ContainerResponse {
	resp := ContainerResponse{
		ID:               c.ID,
		Number:           c.Number,
		Status:           c.Status.String(),
		TotalPurchaseCNY: c.TotalPurchaseCNY,
		ExchangeRate:     c.ExchangeRate,
		TotalPurchaseUSD: c.TotalPurchaseUSD,
		TotalExpensesUSD: c.TotalExpensesUSD,
		NetProfitUSD:     c.NetProfitUSD,
		ArrivedAt:        c.ArrivedAt,
		ClosedAt:         c.ClosedAt,
		Items:            make([]ItemResponse, 0, len(c.Items)),
		Expenses:         make([]ExpenseResponse, 0, len(c.Expenses)),
		Investments:      make([]InvestmentResponse, 0, len(c.Investments)),
		Payouts:          make([]PayoutResponse, 0, len(c.Payouts)),
	}

	for i := range c.Items {
		item := &c.Items[i]
		resp.Items = append(resp.Items, ItemResponse{
			ID:                       item.ID,
			ProductID:                item.ProductID,
			ProductName:              item.ProductName,
			ProductCode:              item.ProductCode,
			Quantity:                 item.Quantity,
			CostPerUnitUSD:           item.CostPerUnitUSD,
			PurchasePriceOverrideUSD: item.PurchasePriceOverrideUSD,
			SalePriceOverrideUSD:     item.SalePriceOverrideUSD,
		})
	}
	for i := range c.Expenses {
		exp := &c.Expenses[i]
		expResp := ExpenseResponse{
			ID:           exp.ID,
			PeriodID:     exp.PeriodID,
			Category:     exp.Category,
			Description:  exp.Description,
			AmountUSD:    exp.AmountUSD,
			EffectiveUSD: exp.EffectiveAmount(),
			IncurredAt:   exp.IncurredAt,
			Corrections:  make([]CorrectionResponse, 0, len(exp.Corrections)),
		}
		for j := range exp.Corrections {
			corr := &exp.Corrections[j]
			expResp.Corrections = append(expResp.Corrections, CorrectionResponse{
				ID:          corr.ID,
				PeriodID:    corr.PeriodID,
				DeltaUSD:    corr.DeltaUSD,
				Reason:      corr.Reason,
				Confirmed:   corr.Confirmed,
				ConfirmedAt: corr.ConfirmedAt,
			})
		}
		resp.Expenses = append(resp.Expenses, expResp)
	}
	for i := range c.Investments {
		inv := &c.Investments[i]
		resp.Investments = append(resp.Investments, InvestmentResponse{
			ID:              inv.ID,
			InvestorID:      inv.InvestorID,
			InvestorName:    inv.InvestorName,
			AmountUSD:       inv.AmountUSD,
			PercentageShare: inv.PercentageShare,
		})
	}
	for i := range c.Payouts {
		p := &c.Payouts[i]
		resp.Payouts = append(resp.Payouts, PayoutResponse{
			ID:         p.ID,
			InvestorID: p.InvestorID,
			AmountUSD:  p.AmountUSD,
			Note:       p.Note,
			PaidAt:     p.PaidAt,
		})
	}
	return resp
}
