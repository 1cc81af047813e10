package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardSummary is the back-office landing view. Every figure is
// recomputed from source rows on demand; nothing here is cached across
// requests.
type DashboardSummary struct {
	PeriodLabel  string    `json:"period_label"`
	PeriodLocked bool      `json:"period_locked"`
	GeneratedAt  time.Time `json:"generated_at"`

	SalesTotalUSD   decimal.Decimal `json:"sales_total_usd"`
	SalesPaidUSD    decimal.Decimal `json:"sales_paid_usd"`
	OutstandingUSD  decimal.Decimal `json:"outstanding_usd"`
	RealizedMargin  decimal.Decimal `json:"realized_margin_usd"`
	SaleCount       int64           `json:"sale_count"`
	ActiveDebtors   int64           `json:"active_debtors"`
	StockValueUSD   decimal.Decimal `json:"stock_value_usd"`
	OpenContainers  int64           `json:"open_containers"`
	PendingSessions int64           `json:"pending_sessions"`
}

// ClosureChecklistView reports each closure predicate with its current
// blocker count so the UI can show exactly what still blocks a lock.
type ClosureChecklistView struct {
	PeriodLabel              string   `json:"period_label"`
	OutstandingSales         int64    `json:"outstanding_sales"`
	UnconfirmedCorrections   int64    `json:"unconfirmed_corrections"`
	NegativeProfitContainers int64    `json:"negative_profit_containers"`
	DiscrepancySessions      int64    `json:"discrepancy_sessions"`
	PendingSessions          int64    `json:"pending_sessions"`
	ConfirmedSessions        int64    `json:"confirmed_sessions"`
	Lockable                 bool     `json:"lockable"`
	Blockers                 []string `json:"blockers"`
}

// ContainerFinancialsView is the per-container settlement projection
type ContainerFinancialsView struct {
	ContainerID      uuid.UUID               `json:"container_id"`
	Number           string                  `json:"number"`
	Status           string                  `json:"status"`
	TotalPurchaseUSD decimal.Decimal         `json:"total_purchase_usd"`
	TotalExpensesUSD decimal.Decimal         `json:"total_expenses_usd"`
	NetProfitUSD     decimal.Decimal         `json:"net_profit_usd"`
	PayablePoolUSD   decimal.Decimal         `json:"payable_pool_usd"`
	RemainingStock   decimal.Decimal         `json:"remaining_stock"`
	StockValueUSD    decimal.Decimal         `json:"stock_value_usd"`
	Investors        []InvestorSettlementRow `json:"investors"`
}

// InvestorSettlementRow is one investor's settlement position on a
// container: capital share, what has been paid, what remains, and the
// diverging profit figure shown alongside.
type InvestorSettlementRow struct {
	InvestorID      uuid.UUID       `json:"investor_id"`
	InvestorName    string          `json:"investor_name"`
	InvestedUSD     decimal.Decimal `json:"invested_usd"`
	PercentageShare decimal.Decimal `json:"percentage_share"`
	PayableUSD      decimal.Decimal `json:"payable_usd"`
	PaidOutUSD      decimal.Decimal `json:"paid_out_usd"`
	RemainingUSD    decimal.Decimal `json:"remaining_usd"`
	ProfitShareUSD  decimal.Decimal `json:"profit_share_usd"`
}

// DebtorRow is one indebted client in the receivables view
type DebtorRow struct {
	ClientID           uuid.UUID       `json:"client_id"`
	ClientName         string          `json:"client_name"`
	OutstandingDebtUSD decimal.Decimal `json:"outstanding_debt_usd"`
	OldestDueDate      *time.Time      `json:"oldest_due_date,omitempty"`
	OpenSaleCount      int64           `json:"open_sale_count"`
}

// SalesByClientRow aggregates sales figures per client for a period
type SalesByClientRow struct {
	ClientID    uuid.UUID       `json:"client_id"`
	ClientName  string          `json:"client_name"`
	TotalUSD    decimal.Decimal `json:"total_usd"`
	PaidUSD     decimal.Decimal `json:"paid_usd"`
	DebtUSD     decimal.Decimal `json:"debt_usd"`
	MarginUSD   decimal.Decimal `json:"margin_usd"`
	SaleCount   int64           `json:"sale_count"`
	ReturnedUSD decimal.Decimal `json:"returned_usd"`
}

// MonthlyTrendRow is one month of the profit trend chart
type MonthlyTrendRow struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	SalesTotalUSD  decimal.Decimal `json:"sales_total_usd"`
	RealizedMargin decimal.Decimal `json:"realized_margin_usd"`
	ExpensesUSD    decimal.Decimal `json:"expenses_usd"`
}
