package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesAggregates are the rolled-up money figures for a period
type SalesAggregates struct {
	TotalUSD       decimal.Decimal
	PaidUSD        decimal.Decimal
	DebtUSD        decimal.Decimal
	RealizedMargin decimal.Decimal
	SaleCount      int64
}

// Repository is the read side of the reporting module. Implementations
// query source rows directly; the projections are never persisted.
type Repository interface {
	// SalesAggregatesForPeriod rolls up sales figures for a period
	SalesAggregatesForPeriod(ctx context.Context, periodID uuid.UUID) (*SalesAggregates, error)

	// StockValue sums remaining quantity times current unit cost over
	// non-closed containers
	StockValue(ctx context.Context) (decimal.Decimal, error)

	// Debtors lists clients with outstanding debt, largest first
	Debtors(ctx context.Context, limit int) ([]DebtorRow, error)

	// SalesByClient aggregates period sales per client
	SalesByClient(ctx context.Context, periodID uuid.UUID) ([]SalesByClientRow, error)

	// MonthlyTrend returns one row per month over the trailing window
	MonthlyTrend(ctx context.Context, from, to time.Time) ([]MonthlyTrendRow, error)
}
