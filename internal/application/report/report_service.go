package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/container"
	"github.com/importdesk/backend/internal/domain/inventory"
	"github.com/importdesk/backend/internal/domain/period"
	"github.com/importdesk/backend/internal/domain/report"
	"github.com/importdesk/backend/internal/domain/shared"
)

// trendMonths is the window of the monthly profit trend
const trendMonths = 12

// Service assembles the reporting projections. It reads source rows
// directly; every figure is computed on demand and nothing is cached
// or persisted.
type Service struct {
	reports    report.Repository
	periods    period.Repository
	containers container.Repository
	counts     inventory.Repository
}

// NewService creates a new report Service
func NewService(
	reports report.Repository,
	periods period.Repository,
	containers container.Repository,
	counts inventory.Repository,
) *Service {
	return &Service{
		reports:    reports,
		periods:    periods,
		containers: containers,
		counts:     counts,
	}
}

// Dashboard builds the landing summary for the period owning the given
// date (today when zero).
func (s *Service) Dashboard(ctx context.Context, at time.Time) (*report.DashboardSummary, error) {
	if at.IsZero() {
		at = time.Now()
	}
	year, month := period.PeriodOf(at)
	p, err := s.periods.FindOrCreate(ctx, year, month)
	if err != nil {
		return nil, err
	}

	aggregates, err := s.reports.SalesAggregatesForPeriod(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	stockValue, err := s.reports.StockValue(ctx)
	if err != nil {
		return nil, err
	}
	debtors, err := s.reports.Debtors(ctx, 0)
	if err != nil {
		return nil, err
	}
	openContainers, err := s.containers.Count(ctx, shared.Filter{
		Filters: map[string]interface{}{"status": container.ContainerStatusArrived.String()},
	})
	if err != nil {
		return nil, err
	}
	pendingSessions, err := s.counts.CountByStatus(ctx, inventory.SessionStatusPending)
	if err != nil {
		return nil, err
	}

	return &report.DashboardSummary{
		PeriodLabel:     p.Label(),
		PeriodLocked:    p.IsLocked(),
		GeneratedAt:     time.Now(),
		SalesTotalUSD:   aggregates.TotalUSD,
		SalesPaidUSD:    aggregates.PaidUSD,
		OutstandingUSD:  aggregates.DebtUSD,
		RealizedMargin:  aggregates.RealizedMargin,
		SaleCount:       aggregates.SaleCount,
		ActiveDebtors:   int64(len(debtors)),
		StockValueUSD:   stockValue,
		OpenContainers:  openContainers,
		PendingSessions: pendingSessions,
	}, nil
}

// ContainerFinancials projects one container's settlement view: cost
// allocation result, payable pool, remaining stock value and every
// investor's position.
func (s *Service) ContainerFinancials(ctx context.Context, containerID uuid.UUID) (*report.ContainerFinancialsView, error) {
	c, err := s.containers.FindByID(ctx, containerID)
	if err != nil {
		return nil, err
	}

	stockValue := decimal.Zero
	for i := range c.Items {
		item := &c.Items[i]
		stockValue = stockValue.Add(item.Quantity.Mul(item.CostPerUnitUSD))
	}

	view := &report.ContainerFinancialsView{
		ContainerID:      c.ID,
		Number:           c.Number,
		Status:           c.Status.String(),
		TotalPurchaseUSD: c.TotalPurchaseUSD,
		TotalExpensesUSD: c.TotalExpensesUSD,
		NetProfitUSD:     c.NetProfitUSD,
		PayablePoolUSD:   c.PayablePool(),
		RemainingStock:   c.TotalQuantity(),
		StockValueUSD:    stockValue,
		Investors:        make([]report.InvestorSettlementRow, 0, len(c.Investments)),
	}
	for i := range c.Investments {
		inv := &c.Investments[i]
		view.Investors = append(view.Investors, report.InvestorSettlementRow{
			InvestorID:      inv.InvestorID,
			InvestorName:    inv.InvestorName,
			InvestedUSD:     inv.AmountUSD,
			PercentageShare: inv.PercentageShare,
			PayableUSD:      c.PayableShare(inv.InvestorID),
			PaidOutUSD:      c.TotalPaidOut(inv.InvestorID),
			RemainingUSD:    c.AvailablePayout(inv.InvestorID),
			ProfitShareUSD:  c.ProfitShare(inv.InvestorID),
		})
	}
	return view, nil
}

// Debtors lists clients with outstanding debt, largest first
func (s *Service) Debtors(ctx context.Context, limit int) ([]report.DebtorRow, error) {
	return s.reports.Debtors(ctx, limit)
}

// SalesByClient aggregates period sales per client
func (s *Service) SalesByClient(ctx context.Context, periodID uuid.UUID) ([]report.SalesByClientRow, error) {
	if _, err := s.periods.FindByID(ctx, periodID); err != nil {
		return nil, err
	}
	return s.reports.SalesByClient(ctx, periodID)
}

// MonthlyTrend returns the trailing twelve months of sales, margin and
// expense figures, oldest first.
func (s *Service) MonthlyTrend(ctx context.Context, until time.Time) ([]report.MonthlyTrendRow, error) {
	if until.IsZero() {
		until = time.Now()
	}
	from := until.AddDate(0, -trendMonths+1, 0)
	from = time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, until.Location())
	return s.reports.MonthlyTrend(ctx, from, until)
}
