package models

import (
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/partner"
)

// ClientModel is the persistence model for the Client aggregate.
type ClientModel struct {
	AggregateModel
	Code               string               `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name               string               `gorm:"type:varchar(200);not null"`
	Phone              string               `gorm:"type:varchar(50);index"`
	Email              string               `gorm:"type:varchar(200);index"`
	Address            string               `gorm:"type:text"`
	Notes              string               `gorm:"type:text"`
	Status             partner.ClientStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	CreditLimitUSD     decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	OutstandingDebtUSD decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client.
func (m *ClientModel) ToDomain() *partner.Client {
	c := &partner.Client{
		Code:               m.Code,
		Name:               m.Name,
		Phone:              m.Phone,
		Email:              m.Email,
		Address:            m.Address,
		Notes:              m.Notes,
		Status:             m.Status,
		CreditLimitUSD:     m.CreditLimitUSD,
		OutstandingDebtUSD: m.OutstandingDebtUSD,
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Client.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Code = c.Code
	m.Name = c.Name
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.Notes = c.Notes
	m.Status = c.Status
	m.CreditLimitUSD = c.CreditLimitUSD
	m.OutstandingDebtUSD = c.OutstandingDebtUSD
}

// ClientModelFromDomain creates a persistence model from a domain Client.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// InvestorModel is the persistence model for the Investor aggregate.
type InvestorModel struct {
	AggregateModel
	Name             string          `gorm:"type:varchar(200);not null"`
	Phone            string          `gorm:"type:varchar(50)"`
	Notes            string          `gorm:"type:text"`
	Active           bool            `gorm:"not null;default:true;index"`
	TotalInvestedUSD decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InvestorModel) TableName() string {
	return "investors"
}

// ToDomain converts the persistence model to a domain Investor.
func (m *InvestorModel) ToDomain() *partner.Investor {
	i := &partner.Investor{
		Name:             m.Name,
		Phone:            m.Phone,
		Notes:            m.Notes,
		Active:           m.Active,
		TotalInvestedUSD: m.TotalInvestedUSD,
	}
	m.PopulateAggregateRoot(&i.BaseAggregateRoot)
	return i
}

// FromDomain populates the persistence model from a domain Investor.
func (m *InvestorModel) FromDomain(i *partner.Investor) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Name = i.Name
	m.Phone = i.Phone
	m.Notes = i.Notes
	m.Active = i.Active
	m.TotalInvestedUSD = i.TotalInvestedUSD
}

// InvestorModelFromDomain creates a persistence model from a domain Investor.
func InvestorModelFromDomain(i *partner.Investor) *InvestorModel {
	m := &InvestorModel{}
	m.FromDomain(i)
	return m
}
