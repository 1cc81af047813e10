package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/importdesk/backend/internal/domain/report"
)

// GormReportRepository implements report.Repository with aggregate
// queries over the source tables. Nothing here is materialized; every
// call recomputes from current rows.
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// SalesAggregatesForPeriod rolls up sales figures for a period. Totals
// on the sale rows are already net of returns, so they sum directly;
// the margin comes from the frozen per-line prices.
func (r *GormReportRepository) SalesAggregatesForPeriod(ctx context.Context, periodID uuid.UUID) (*report.SalesAggregates, error) {
	var row struct {
		TotalUSD       decimal.Decimal
		PaidUSD        decimal.Decimal
		DebtUSD        decimal.Decimal
		RealizedMargin decimal.Decimal
		SaleCount      int64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(s.total_amount_usd), 0) AS total_usd,
			COALESCE(SUM(s.paid_amount_usd), 0)  AS paid_usd,
			COALESCE(SUM(s.debt_amount_usd), 0)  AS debt_usd,
			COALESCE((
				SELECT SUM((i.quantity - i.returned_quantity) * (i.sale_price_per_unit_usd - i.cost_per_unit_usd))
				FROM sale_items i
				JOIN sales s2 ON s2.id = i.sale_id
				WHERE s2.period_id = ?
			), 0) AS realized_margin,
			COUNT(*) AS sale_count
		FROM sales s
		WHERE s.period_id = ?`, periodID, periodID).Scan(&row).Error
	if err != nil {
		return nil, err
	}

	return &report.SalesAggregates{
		TotalUSD:       row.TotalUSD,
		PaidUSD:        row.PaidUSD,
		DebtUSD:        row.DebtUSD,
		RealizedMargin: row.RealizedMargin,
		SaleCount:      row.SaleCount,
	}, nil
}

// StockValue sums remaining quantity times current unit cost over
// non-closed containers
func (r *GormReportRepository) StockValue(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		StockValue decimal.Decimal
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(i.quantity * i.cost_per_unit_usd), 0) AS stock_value
		FROM container_items i
		JOIN containers c ON c.id = i.container_id
		WHERE c.status <> 'CLOSED'`).Scan(&row).Error
	if err != nil {
		return decimal.Zero, err
	}
	return row.StockValue, nil
}

// Debtors lists clients with outstanding debt, largest first
func (r *GormReportRepository) Debtors(ctx context.Context, limit int) ([]report.DebtorRow, error) {
	var rows []report.DebtorRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id   AS client_id,
			c.name AS client_name,
			c.outstanding_debt_usd,
			MIN(s.due_date) AS oldest_due_date,
			COUNT(s.id)     AS open_sale_count
		FROM clients c
		LEFT JOIN sales s ON s.client_id = c.id AND s.status IN ('DEBT', 'PARTIALLY_PAID')
		WHERE c.status = 'active' AND c.outstanding_debt_usd > 0
		GROUP BY c.id, c.name, c.outstanding_debt_usd
		ORDER BY c.outstanding_debt_usd DESC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SalesByClient aggregates period sales per client
func (r *GormReportRepository) SalesByClient(ctx context.Context, periodID uuid.UUID) ([]report.SalesByClientRow, error) {
	var rows []report.SalesByClientRow

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			s.client_id,
			s.client_name,
			COALESCE(SUM(s.total_amount_usd), 0) AS total_usd,
			COALESCE(SUM(s.paid_amount_usd), 0)  AS paid_usd,
			COALESCE(SUM(s.debt_amount_usd), 0)  AS debt_usd,
			COALESCE(SUM(s.original_total_usd - s.total_amount_usd), 0) AS returned_usd,
			COALESCE((
				SELECT SUM((i.quantity - i.returned_quantity) * (i.sale_price_per_unit_usd - i.cost_per_unit_usd))
				FROM sale_items i
				JOIN sales s2 ON s2.id = i.sale_id
				WHERE s2.period_id = ? AND s2.client_id = s.client_id
			), 0) AS margin_usd,
			COUNT(*) AS sale_count
		FROM sales s
		WHERE s.period_id = ?
		GROUP BY s.client_id, s.client_name
		ORDER BY total_usd DESC`, periodID, periodID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MonthlyTrend returns one row per month over the window. Sales land in
// the month they were sold; expenses in the month they were incurred.
func (r *GormReportRepository) MonthlyTrend(ctx context.Context, from, to time.Time) ([]report.MonthlyTrendRow, error) {
	var rows []report.MonthlyTrendRow

	err := r.db.WithContext(ctx).Raw(`
		WITH months AS (
			SELECT
				EXTRACT(YEAR FROM s.sold_at)::int  AS year,
				EXTRACT(MONTH FROM s.sold_at)::int AS month,
				SUM(s.total_amount_usd) AS sales_total_usd,
				COALESCE(SUM((
					SELECT SUM((i.quantity - i.returned_quantity) * (i.sale_price_per_unit_usd - i.cost_per_unit_usd))
					FROM sale_items i
					WHERE i.sale_id = s.id
				)), 0) AS realized_margin
			FROM sales s
			WHERE s.sold_at >= ? AND s.sold_at < ?
			GROUP BY 1, 2
		), expenses AS (
			SELECT
				EXTRACT(YEAR FROM e.incurred_at)::int  AS year,
				EXTRACT(MONTH FROM e.incurred_at)::int AS month,
				SUM(e.amount_usd) AS expenses_usd
			FROM container_expenses e
			WHERE e.incurred_at >= ? AND e.incurred_at < ?
			GROUP BY 1, 2
		)
		SELECT
			COALESCE(m.year, x.year)   AS year,
			COALESCE(m.month, x.month) AS month,
			COALESCE(m.sales_total_usd, 0) AS sales_total_usd,
			COALESCE(m.realized_margin, 0) AS realized_margin,
			COALESCE(x.expenses_usd, 0)    AS expenses_usd
		FROM months m
		FULL OUTER JOIN expenses x ON x.year = m.year AND x.month = m.month
		ORDER BY 1, 2`, from, to, from, to).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Ensure GormReportRepository implements report.Repository
var _ report.Repository = (*GormReportRepository)(nil)
