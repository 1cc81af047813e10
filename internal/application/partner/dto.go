package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/importdesk/backend/internal/domain/partner"
)

// CreateClientRequest registers a client
type CreateClientRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// UpdateClientRequest updates a client's card
type UpdateClientRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// SetCreditLimitRequest sets the client's credit ceiling; zero removes
// the limit
type SetCreditLimitRequest struct {
	CreditLimitUSD decimal.Decimal `json:"credit_limit_usd"`
}

// ClientResponse is the API view of a client
type ClientResponse struct {
	ID                 uuid.UUID       `json:"id"`
	Code               string          `json:"code"`
	Name               string          `json:"name"`
	Phone              string          `json:"phone,omitempty"`
	Email              string          `json:"email,omitempty"`
	Address            string          `json:"address,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	Status             string          `json:"status"`
	CreditLimitUSD     decimal.Decimal `json:"credit_limit_usd"`
	OutstandingDebtUSD decimal.Decimal `json:"outstanding_debt_usd"`
	CreatedAt          time.Time       `json:"created_at"`
}

// ToClientResponse maps a client to its API view
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:                 c.ID,
		Code:               c.Code,
		Name:               c.Name,
		Phone:              c.Phone,
		Email:              c.Email,
		Address:            c.Address,
		Notes:              c.Notes,
		Status:             string(c.Status),
		CreditLimitUSD:     c.CreditLimitUSD,
		OutstandingDebtUSD: c.OutstandingDebtUSD,
		CreatedAt:          c.CreatedAt,
	}
}

// CreateInvestorRequest registers an investor
type CreateInvestorRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// UpdateInvestorRequest updates an investor's card
type UpdateInvestorRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// InvestorResponse is the API view of an investor
type InvestorResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	Active           bool            `json:"active"`
	TotalInvestedUSD decimal.Decimal `json:"total_invested_usd"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToInvestorResponse maps an investor to its API view
func ToInvestorResponse(i *partner.Investor) InvestorResponse {
	return InvestorResponse{
		ID:               i.ID,
		Name:             i.Name,
		Phone:            i.Phone,
		Notes:            i.Notes,
		Active:           i.Active,
		TotalInvestedUSD: i.TotalInvestedUSD,
		CreatedAt:        i.CreatedAt,
	}
}
