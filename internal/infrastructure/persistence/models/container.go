package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/container"
)

// ContainerModel is the persistence model for the Container aggregate.
// Children are loaded and saved with the root.
type ContainerModel struct {
	AggregateModel
	Number           string                    `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status           container.ContainerStatus `gorm:"type:varchar(20);not null;default:'IN_TRANSIT';index"`
	TotalPurchaseCNY decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	ExchangeRate     decimal.Decimal           `gorm:"type:decimal(18,6);not null;default:0"`
	TotalPurchaseUSD decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	TotalExpensesUSD decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	NetProfitUSD     decimal.Decimal           `gorm:"type:decimal(18,4);not null;default:0"`
	ArrivedAt        *time.Time
	ClosedAt         *time.Time

	Items       []ContainerItemModel       `gorm:"foreignKey:ContainerID"`
	Expenses    []ContainerExpenseModel    `gorm:"foreignKey:ContainerID"`
	Investments []ContainerInvestmentModel `gorm:"foreignKey:ContainerID"`
	Payouts     []InvestorPayoutModel      `gorm:"foreignKey:ContainerID"`
}

// TableName returns the table name for GORM
func (ContainerModel) TableName() string {
	return "containers"
}

// ContainerItemModel is the persistence model for a container stock line.
type ContainerItemModel struct {
	ID                       uuid.UUID        `gorm:"type:uuid;primary_key"`
	ContainerID              uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_container_item_product,priority:1"`
	ProductID                uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_container_item_product,priority:2"`
	ProductName              string           `gorm:"type:varchar(200);not null"`
	ProductCode              string           `gorm:"type:varchar(50)"`
	Quantity                 decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	CostPerUnitUSD           decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	PurchasePriceOverrideUSD *decimal.Decimal `gorm:"type:decimal(18,4)"`
	SalePriceOverrideUSD     *decimal.Decimal `gorm:"type:decimal(18,4)"`
	CreatedAt                time.Time        `gorm:"not null"`
	UpdatedAt                time.Time        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContainerItemModel) TableName() string {
	return "container_items"
}

// ContainerExpenseModel is the persistence model for an expense entry.
type ContainerExpenseModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ContainerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	PeriodID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category    string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text"`
	AmountUSD   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	IncurredAt  time.Time       `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`

	Corrections []ExpenseCorrectionModel `gorm:"foreignKey:ExpenseID"`
}

// TableName returns the table name for GORM
func (ContainerExpenseModel) TableName() string {
	return "container_expenses"
}

// ExpenseCorrectionModel is the persistence model for a signed expense
// correction.
type ExpenseCorrectionModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ExpenseID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	PeriodID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeltaUSD    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason      string          `gorm:"type:text;not null"`
	Confirmed   bool            `gorm:"not null;default:false;index"`
	ConfirmedAt *time.Time
	ConfirmedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ExpenseCorrectionModel) TableName() string {
	return "expense_corrections"
}

// ContainerInvestmentModel is the persistence model for one investor's
// accumulated stake in a container.
type ContainerInvestmentModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ContainerID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_investment_container_investor,priority:1"`
	InvestorID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_investment_container_investor,priority:2"`
	InvestorName    string          `gorm:"type:varchar(200);not null"`
	AmountUSD       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PercentageShare decimal.Decimal `gorm:"type:decimal(9,4);not null;default:0"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContainerInvestmentModel) TableName() string {
	return "container_investments"
}

// InvestorPayoutModel is the persistence model for an append-only
// payout record.
type InvestorPayoutModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ContainerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InvestorID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountUSD   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Note        string          `gorm:"type:text"`
	PaidAt      time.Time       `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvestorPayoutModel) TableName() string {
	return "investor_payouts"
}

// ToDomain converts the persistence model to a domain Container with
// all children.
func (m *ContainerModel) ToDomain() *container.Container {
	c := &container.Container{
		Number:           m.Number,
		Status:           m.Status,
		TotalPurchaseCNY: m.TotalPurchaseCNY,
		ExchangeRate:     m.ExchangeRate,
		TotalPurchaseUSD: m.TotalPurchaseUSD,
		TotalExpensesUSD: m.TotalExpensesUSD,
		NetProfitUSD:     m.NetProfitUSD,
		ArrivedAt:        m.ArrivedAt,
		ClosedAt:         m.ClosedAt,
		Items:            make([]container.ContainerItem, 0, len(m.Items)),
		Expenses:         make([]container.ContainerExpense, 0, len(m.Expenses)),
		Investments:      make([]container.ContainerInvestment, 0, len(m.Investments)),
		Payouts:          make([]container.InvestorPayout, 0, len(m.Payouts)),
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)

	for i := range m.Items {
		item := &m.Items[i]
		c.Items = append(c.Items, container.ContainerItem{
			ID:                       item.ID,
			ContainerID:              item.ContainerID,
			ProductID:                item.ProductID,
			ProductName:              item.ProductName,
			ProductCode:              item.ProductCode,
			Quantity:                 item.Quantity,
			CostPerUnitUSD:           item.CostPerUnitUSD,
			PurchasePriceOverrideUSD: item.PurchasePriceOverrideUSD,
			SalePriceOverrideUSD:     item.SalePriceOverrideUSD,
			CreatedAt:                item.CreatedAt,
			UpdatedAt:                item.UpdatedAt,
		})
	}
	for i := range m.Expenses {
		exp := &m.Expenses[i]
		corrections := make([]container.ExpenseCorrection, 0, len(exp.Corrections))
		for j := range exp.Corrections {
			corr := &exp.Corrections[j]
			corrections = append(corrections, container.ExpenseCorrection{
				ID:          corr.ID,
				ExpenseID:   corr.ExpenseID,
				PeriodID:    corr.PeriodID,
				DeltaUSD:    corr.DeltaUSD,
				Reason:      corr.Reason,
				Confirmed:   corr.Confirmed,
				ConfirmedAt: corr.ConfirmedAt,
				ConfirmedBy: corr.ConfirmedBy,
				CreatedAt:   corr.CreatedAt,
			})
		}
		c.Expenses = append(c.Expenses, container.ContainerExpense{
			ID:          exp.ID,
			ContainerID: exp.ContainerID,
			PeriodID:    exp.PeriodID,
			Category:    exp.Category,
			Description: exp.Description,
			AmountUSD:   exp.AmountUSD,
			IncurredAt:  exp.IncurredAt,
			Corrections: corrections,
			CreatedAt:   exp.CreatedAt,
		})
	}
	for i := range m.Investments {
		inv := &m.Investments[i]
		c.Investments = append(c.Investments, container.ContainerInvestment{
			ID:              inv.ID,
			ContainerID:     inv.ContainerID,
			InvestorID:      inv.InvestorID,
			InvestorName:    inv.InvestorName,
			AmountUSD:       inv.AmountUSD,
			PercentageShare: inv.PercentageShare,
			CreatedAt:       inv.CreatedAt,
			UpdatedAt:       inv.UpdatedAt,
		})
	}
	for i := range m.Payouts {
		p := &m.Payouts[i]
		c.Payouts = append(c.Payouts, container.InvestorPayout{
			ID:          p.ID,
			ContainerID: p.ContainerID,
			InvestorID:  p.InvestorID,
			AmountUSD:   p.AmountUSD,
			Note:        p.Note,
			PaidAt:      p.PaidAt,
			CreatedAt:   p.CreatedAt,
		})
	}
	return c
}

// FromDomain populates the persistence model from a domain Container.
func (m *ContainerModel) FromDomain(c *container.Container) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Number = c.Number
	m.Status = c.Status
	m.TotalPurchaseCNY = c.TotalPurchaseCNY
	m.ExchangeRate = c.ExchangeRate
	m.TotalPurchaseUSD = c.TotalPurchaseUSD
	m.TotalExpensesUSD = c.TotalExpensesUSD
	m.NetProfitUSD = c.NetProfitUSD
	m.ArrivedAt = c.ArrivedAt
	m.ClosedAt = c.ClosedAt

	m.Items = make([]ContainerItemModel, 0, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		m.Items = append(m.Items, ContainerItemModel{
			ID:                       item.ID,
			ContainerID:              c.ID,
			ProductID:                item.ProductID,
			ProductName:              item.ProductName,
			ProductCode:              item.ProductCode,
			Quantity:                 item.Quantity,
			CostPerUnitUSD:           item.CostPerUnitUSD,
			PurchasePriceOverrideUSD: item.PurchasePriceOverrideUSD,
			SalePriceOverrideUSD:     item.SalePriceOverrideUSD,
			CreatedAt:                item.CreatedAt,
			UpdatedAt:                item.UpdatedAt,
		})
	}
	m.Expenses = make([]ContainerExpenseModel, 0, len(c.Expenses))
	for i := range c.Expenses {
		exp := &c.Expenses[i]
		corrections := make([]ExpenseCorrectionModel, 0, len(exp.Corrections))
		for j := range exp.Corrections {
			corr := &exp.Corrections[j]
			corrections = append(corrections, ExpenseCorrectionModel{
				ID:          corr.ID,
				ExpenseID:   exp.ID,
				PeriodID:    corr.PeriodID,
				DeltaUSD:    corr.DeltaUSD,
				Reason:      corr.Reason,
				Confirmed:   corr.Confirmed,
				ConfirmedAt: corr.ConfirmedAt,
				ConfirmedBy: corr.ConfirmedBy,
				CreatedAt:   corr.CreatedAt,
			})
		}
		m.Expenses = append(m.Expenses, ContainerExpenseModel{
			ID:          exp.ID,
			ContainerID: c.ID,
			PeriodID:    exp.PeriodID,
			Category:    exp.Category,
			Description: exp.Description,
			AmountUSD:   exp.AmountUSD,
			IncurredAt:  exp.IncurredAt,
			CreatedAt:   exp.CreatedAt,
			Corrections: corrections,
		})
	}
	m.Investments = make([]ContainerInvestmentModel, 0, len(c.Investments))
	for i := range c.Investments {
		inv := &c.Investments[i]
		m.Investments = append(m.Investments, ContainerInvestmentModel{
			ID:              inv.ID,
			ContainerID:     c.ID,
			InvestorID:      inv.InvestorID,
			InvestorName:    inv.InvestorName,
			AmountUSD:       inv.AmountUSD,
			PercentageShare: inv.PercentageShare,
			CreatedAt:       inv.CreatedAt,
			UpdatedAt:       inv.UpdatedAt,
		})
	}
	m.Payouts = make([]InvestorPayoutModel, 0, len(c.Payouts))
	for i := range c.Payouts {
		p := &c.Payouts[i]
		m.Payouts = append(m.Payouts, InvestorPayoutModel{
			ID:          p.ID,
			ContainerID: c.ID,
			InvestorID:  p.InvestorID,
			AmountUSD:   p.AmountUSD,
			Note:        p.Note,
			PaidAt:      p.PaidAt,
			CreatedAt:   p.CreatedAt,
		})
	}
}

// ContainerModelFromDomain creates a persistence model from a domain
// Container.
func ContainerModelFromDomain(c *container.Container) *ContainerModel {
	m := &ContainerModel{}
	m.FromDomain(c)
	return m
}
