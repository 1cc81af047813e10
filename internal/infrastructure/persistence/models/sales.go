package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/sales"
)

// SaleModel is the persistence model for the Sale aggregate. Items,
// payments and returns travel with the root.
type SaleModel struct {
	AggregateModel
	Number           string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	ClientID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	ClientName       string           `gorm:"type:varchar(200);not null"`
	Mode             sales.SaleMode   `gorm:"type:varchar(20);not null"`
	Status           sales.SaleStatus `gorm:"type:varchar(20);not null;index"`
	PeriodID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	SoldAt           time.Time        `gorm:"not null;index"`
	DueDate          *time.Time
	TotalAmountUSD   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PaidAmountUSD    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DebtAmountUSD    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OriginalTotalUSD decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	FullyReturned    bool            `gorm:"not null;default:false"`

	Items    []SaleItemModel   `gorm:"foreignKey:SaleID"`
	Payments []PaymentModel    `gorm:"foreignKey:SaleID"`
	Returns  []SaleReturnModel `gorm:"foreignKey:SaleID"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is the persistence model for a sold line with its
// frozen prices.
type SaleItemModel struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID              uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContainerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName         string          `gorm:"type:varchar(200);not null"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReturnedQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPerUnitUSD      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SalePricePerUnitUSD decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt           time.Time       `gorm:"not null"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// PaymentModel is the persistence model for an append-only payment.
type PaymentModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AmountUSD decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method    string          `gorm:"type:varchar(50)"`
	PaidAt    time.Time       `gorm:"not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// SaleReturnModel is the persistence model for one return operation.
type SaleReturnModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Number    string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	TotalUSD  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time       `gorm:"not null"`

	Items []ReturnItemModel `gorm:"foreignKey:ReturnID"`
}

// TableName returns the table name for GORM
func (SaleReturnModel) TableName() string {
	return "sale_returns"
}

// ReturnItemModel is the persistence model for one returned line.
type ReturnItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReturnID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SaleItemID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ContainerID uuid.UUID       `gorm:"type:uuid;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AmountUSD   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReturnItemModel) TableName() string {
	return "return_items"
}

// ToDomain converts the persistence model to a domain Sale with all
// children.
func (m *SaleModel) ToDomain() *sales.Sale {
	s := &sales.Sale{
		Number:           m.Number,
		ClientID:         m.ClientID,
		ClientName:       m.ClientName,
		Mode:             m.Mode,
		Status:           m.Status,
		PeriodID:         m.PeriodID,
		SoldAt:           m.SoldAt,
		DueDate:          m.DueDate,
		TotalAmountUSD:   m.TotalAmountUSD,
		PaidAmountUSD:    m.PaidAmountUSD,
		DebtAmountUSD:    m.DebtAmountUSD,
		OriginalTotalUSD: m.OriginalTotalUSD,
		FullyReturned:    m.FullyReturned,
		Items:            make([]sales.SaleItem, 0, len(m.Items)),
		Payments:         make([]sales.Payment, 0, len(m.Payments)),
		Returns:          make([]sales.SaleReturn, 0, len(m.Returns)),
	}
	m.PopulateAggregateRoot(&s.BaseAggregateRoot)

	for i := range m.Items {
		item := &m.Items[i]
		s.Items = append(s.Items, sales.SaleItem{
			ID:                  item.ID,
			SaleID:              item.SaleID,
			ContainerID:         item.ContainerID,
			ProductID:           item.ProductID,
			ProductName:         item.ProductName,
			Quantity:            item.Quantity,
			ReturnedQuantity:    item.ReturnedQuantity,
			CostPerUnitUSD:      item.CostPerUnitUSD,
			SalePricePerUnitUSD: item.SalePricePerUnitUSD,
			CreatedAt:           item.CreatedAt,
			UpdatedAt:           item.UpdatedAt,
		})
	}
	for i := range m.Payments {
		p := &m.Payments[i]
		s.Payments = append(s.Payments, sales.Payment{
			ID:        p.ID,
			SaleID:    p.SaleID,
			AmountUSD: p.AmountUSD,
			Method:    p.Method,
			PaidAt:    p.PaidAt,
			CreatedAt: p.CreatedAt,
		})
	}
	for i := range m.Returns {
		ret := &m.Returns[i]
		items := make([]sales.ReturnItem, 0, len(ret.Items))
		for j := range ret.Items {
			ri := &ret.Items[j]
			items = append(items, sales.ReturnItem{
				ID:          ri.ID,
				ReturnID:    ri.ReturnID,
				SaleItemID:  ri.SaleItemID,
				ContainerID: ri.ContainerID,
				ProductID:   ri.ProductID,
				Quantity:    ri.Quantity,
				AmountUSD:   ri.AmountUSD,
				CreatedAt:   ri.CreatedAt,
			})
		}
		s.Returns = append(s.Returns, sales.SaleReturn{
			ID:        ret.ID,
			SaleID:    ret.SaleID,
			Number:    ret.Number,
			TotalUSD:  ret.TotalUSD,
			Items:     items,
			CreatedAt: ret.CreatedAt,
		})
	}
	return s
}

// FromDomain populates the persistence model from a domain Sale.
func (m *SaleModel) FromDomain(s *sales.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Number = s.Number
	m.ClientID = s.ClientID
	m.ClientName = s.ClientName
	m.Mode = s.Mode
	m.Status = s.Status
	m.PeriodID = s.PeriodID
	m.SoldAt = s.SoldAt
	m.DueDate = s.DueDate
	m.TotalAmountUSD = s.TotalAmountUSD
	m.PaidAmountUSD = s.PaidAmountUSD
	m.DebtAmountUSD = s.DebtAmountUSD
	m.OriginalTotalUSD = s.OriginalTotalUSD
	m.FullyReturned = s.FullyReturned

	m.Items = make([]SaleItemModel, 0, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		m.Items = append(m.Items, SaleItemModel{
			ID:                  item.ID,
			SaleID:              s.ID,
			ContainerID:         item.ContainerID,
			ProductID:           item.ProductID,
			ProductName:         item.ProductName,
			Quantity:            item.Quantity,
			ReturnedQuantity:    item.ReturnedQuantity,
			CostPerUnitUSD:      item.CostPerUnitUSD,
			SalePricePerUnitUSD: item.SalePricePerUnitUSD,
			CreatedAt:           item.CreatedAt,
			UpdatedAt:           item.UpdatedAt,
		})
	}
	m.Payments = make([]PaymentModel, 0, len(s.Payments))
	for i := range s.Payments {
		p := &s.Payments[i]
		m.Payments = append(m.Payments, PaymentModel{
			ID:        p.ID,
			SaleID:    s.ID,
			AmountUSD: p.AmountUSD,
			Method:    p.Method,
			PaidAt:    p.PaidAt,
			CreatedAt: p.CreatedAt,
		})
	}
	m.Returns = make([]SaleReturnModel, 0, len(s.Returns))
	for i := range s.Returns {
		ret := &s.Returns[i]
		items := make([]ReturnItemModel, 0, len(ret.Items))
		for j := range ret.Items {
			ri := &ret.Items[j]
			items = append(items, ReturnItemModel{
				ID:          ri.ID,
				ReturnID:    ret.ID,
				SaleItemID:  ri.SaleItemID,
				ContainerID: ri.ContainerID,
				ProductID:   ri.ProductID,
				Quantity:    ri.Quantity,
				AmountUSD:   ri.AmountUSD,
				CreatedAt:   ri.CreatedAt,
			})
		}
		m.Returns = append(m.Returns, SaleReturnModel{
			ID:        ret.ID,
			SaleID:    s.ID,
			Number:    ret.Number,
			TotalUSD:  ret.TotalUSD,
			CreatedAt: ret.CreatedAt,
			Items:     items,
		})
	}
}

// SaleModelFromDomain creates a persistence model from a domain Sale.
func SaleModelFromDomain(s *sales.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}
